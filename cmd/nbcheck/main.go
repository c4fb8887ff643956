package main

import (
	"os"

	"github.com/vertex-tools/nbcheck/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
