package cli

import (
	"github.com/spf13/cobra"

	"github.com/vertex-tools/nbcheck/pkg/constants"
	"github.com/vertex-tools/nbcheck/pkg/logger"
	"github.com/vertex-tools/nbcheck/pkg/validator"
)

var validateLog = logger.New("cli:validate_command")

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <notebook>",
		Short: "Validate a single notebook",
		Long: `Validate a single notebook file against all enabled rule categories.

The exit code is 0 when the notebook has no ERROR findings, 1 otherwise.
With --strict (or strict_mode in the configuration), warnings also fail the run.

Examples:
  ` + constants.ToolName + ` validate notebook.ipynb
  ` + constants.ToolName + ` validate notebook.ipynb --config validation_rules.yaml
  ` + constants.ToolName + ` validate notebook.ipynb --category structure --category content
  ` + constants.ToolName + ` validate notebook.ipynb --format json --output report.json
  ` + constants.ToolName + ` validate notebook.ipynb --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			categories, _ := cmd.Flags().GetStringSlice("category")
			format, _ := cmd.Flags().GetString("format")
			outputPath, _ := cmd.Flags().GetString("output")
			strict, _ := cmd.Flags().GetBool("strict")
			return ValidateNotebook(args[0], configPath, categories, format, outputPath, strict)
		},
	}

	cmd.Flags().StringP("config", "c", "", "Path to the validation rules configuration file")
	cmd.Flags().StringSlice("category", nil, "Rule category to run (repeatable; default all)")
	cmd.Flags().StringP("format", "f", FormatConsole, "Output format: console or json")
	cmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().Bool("strict", false, "Treat warnings as failures")

	return cmd
}

// ValidateNotebook validates one notebook and renders its report. A report
// with ERROR findings, or with warnings under strict mode, fails the run.
func ValidateNotebook(path, configPath string, categories []string, format, outputPath string, strict bool) error {
	v, err := validator.New(configPath)
	if err != nil {
		return err
	}

	validateLog.Printf("Running validate: path=%s, strict=%v", path, strict)
	report := v.ValidateNotebook(path, categories...)

	if err := renderReports([]*validator.Report{report}, format, outputPath); err != nil {
		return err
	}

	strictMode := strict || v.Config().Settings.StrictMode
	if !report.IsValid || (strictMode && report.WarningCount() > 0) {
		return errValidationFailed
	}
	return nil
}
