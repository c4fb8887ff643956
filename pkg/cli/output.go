package cli

import (
	"fmt"
	"os"

	"github.com/vertex-tools/nbcheck/pkg/console"
	"github.com/vertex-tools/nbcheck/pkg/fileutil"
	"github.com/vertex-tools/nbcheck/pkg/reporter"
	"github.com/vertex-tools/nbcheck/pkg/validator"
)

// Output format names shared by the reporting commands.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
)

// renderReports renders validation reports in the requested format and writes
// them to outputPath, or to stdout when outputPath is empty.
func renderReports(reports []*validator.Report, format, outputPath string) error {
	var data []byte

	switch format {
	case FormatConsole, "":
		data = []byte(reporter.Console(reports) + "\n")
	case FormatJSON:
		rendered, err := reporter.JSON(reports)
		if err != nil {
			return fmt.Errorf("failed to render JSON report: %w", err)
		}
		data = append(rendered, '\n')
	default:
		return fmt.Errorf("unsupported format %q (expected %s or %s)", format, FormatConsole, FormatJSON)
	}

	return writeOutput(data, outputPath)
}

// writeOutput delivers rendered output to a file or stdout. File writes get a
// confirmation on stderr so piped stdout stays clean.
func writeOutput(data []byte, outputPath string) error {
	if outputPath == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := fileutil.WriteFileWithDir(outputPath, data, 0644); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Report written to "+outputPath))
	return nil
}
