package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vertex-tools/nbcheck/pkg/console"
	"github.com/vertex-tools/nbcheck/pkg/constants"
	"github.com/vertex-tools/nbcheck/pkg/logger"
	"github.com/vertex-tools/nbcheck/pkg/validator"
)

var validateDirLog = logger.New("cli:validate_dir_command")

// NewValidateDirCommand creates the validate-dir command
func NewValidateDirCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-dir <directory>",
		Short: "Validate every notebook in a directory",
		Long: `Validate every notebook in a directory matching the file pattern.

Checkpoint copies under ` + constants.CheckpointDirMarker + ` are always skipped. Notebooks are
validated concurrently by a bounded worker pool unless --fail-fast is set,
which validates sequentially and stops at the first invalid notebook.

The exit code is 0 when every notebook passes (or none match), 1 otherwise.

Examples:
  ` + constants.ToolName + ` validate-dir notebooks/
  ` + constants.ToolName + ` validate-dir notebooks/ --recursive=false
  ` + constants.ToolName + ` validate-dir notebooks/ --pattern 'official_*.ipynb'
  ` + constants.ToolName + ` validate-dir notebooks/ --fail-fast
  ` + constants.ToolName + ` validate-dir notebooks/ --format json --output report.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			categories, _ := cmd.Flags().GetStringSlice("category")
			format, _ := cmd.Flags().GetString("format")
			outputPath, _ := cmd.Flags().GetString("output")
			pattern, _ := cmd.Flags().GetString("pattern")
			recursive, _ := cmd.Flags().GetBool("recursive")
			failFast, _ := cmd.Flags().GetBool("fail-fast")
			workers, _ := cmd.Flags().GetInt("workers")
			strict, _ := cmd.Flags().GetBool("strict")
			return ValidateDirectory(args[0], configPath, validator.DirectoryOptions{
				Recursive:  recursive,
				Pattern:    pattern,
				MaxWorkers: workers,
				FailFast:   failFast,
				Categories: categories,
			}, format, outputPath, strict)
		},
	}

	cmd.Flags().StringP("config", "c", "", "Path to the validation rules configuration file")
	cmd.Flags().StringSlice("category", nil, "Rule category to run (repeatable; default all)")
	cmd.Flags().StringP("format", "f", FormatConsole, "Output format: console or json")
	cmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringP("pattern", "p", constants.DefaultNotebookPattern, "Glob pattern for notebook file names")
	cmd.Flags().BoolP("recursive", "r", true, "Walk subdirectories")
	cmd.Flags().Bool("fail-fast", false, "Stop at the first invalid notebook")
	cmd.Flags().Int("workers", constants.DefaultMaxWorkers, "Maximum concurrent validations")
	cmd.Flags().Bool("strict", false, "Treat warnings as failures")

	return cmd
}

// ValidateDirectory validates a directory of notebooks and renders the
// aggregated reports. Any invalid notebook, or any warning under strict mode,
// fails the run. No matching notebooks is not a failure.
func ValidateDirectory(dir, configPath string, opts validator.DirectoryOptions, format, outputPath string, strict bool) error {
	v, err := validator.New(configPath)
	if err != nil {
		return err
	}

	validateDirLog.Printf("Running validate-dir: dir=%s, pattern=%s, recursive=%v", dir, opts.Pattern, opts.Recursive)
	reports, err := v.ValidateDirectory(dir, opts)
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage("No notebooks found in "+dir))
		return nil
	}

	if err := renderReports(reports, format, outputPath); err != nil {
		return err
	}

	strictMode := strict || v.Config().Settings.StrictMode
	for _, report := range reports {
		if !report.IsValid || (strictMode && report.WarningCount() > 0) {
			return errValidationFailed
		}
	}
	return nil
}
