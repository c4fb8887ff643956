// Package cli implements the nbcheck command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vertex-tools/nbcheck/pkg/console"
	"github.com/vertex-tools/nbcheck/pkg/constants"
)

// errValidationFailed signals a run that completed but found blocking issues.
// It maps to exit code 1 without an extra error message: the report already
// told the user everything.
var errValidationFailed = errors.New("validation failed")

// NewRootCommand creates the root nbcheck command with all subcommands.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     constants.ToolName,
		Short:   "Validate Jupyter notebooks against structure, content, metadata, and dependency rules",
		Version: constants.Version,
		Long: `nbcheck validates Jupyter notebooks before publication.

It checks four rule categories:
  structure      Title, overview, setup section, cell ordering, header hierarchy
  content        Hardcoded values, oversized outputs, broken links, documentation ratio
  metadata       Required fields, Colab/Workbench links, license headers
  dependencies   Version pinning, deprecated APIs, import availability

Examples:
  ` + constants.ToolName + ` validate notebook.ipynb
  ` + constants.ToolName + ` validate notebook.ipynb --config validation_rules.yaml --strict
  ` + constants.ToolName + ` validate-dir notebooks/ --recursive --format json -o report.json
  ` + constants.ToolName + ` extract-metadata notebook.ipynb --format yaml
  ` + constants.ToolName + ` init-config`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewValidateDirCommand())
	cmd.AddCommand(NewExtractMetadataCommand())
	cmd.AddCommand(NewInitConfigCommand())

	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		if !errors.Is(err, errValidationFailed) {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		}
		return 1
	}
	return 0
}
