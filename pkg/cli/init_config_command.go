package cli

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/vertex-tools/nbcheck/pkg/console"
	"github.com/vertex-tools/nbcheck/pkg/constants"
	"github.com/vertex-tools/nbcheck/pkg/fileutil"
	"github.com/vertex-tools/nbcheck/pkg/validator"
)

// NewInitConfigCommand creates the init-config command
func NewInitConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write an example validation configuration file",
		Long: `Write an example configuration listing every rule with its default
severity and documented parameters, ready to edit.

Examples:
  ` + constants.ToolName + ` init-config
  ` + constants.ToolName + ` init-config --output rules/team.yaml
  ` + constants.ToolName + ` init-config --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputPath, _ := cmd.Flags().GetString("output")
			force, _ := cmd.Flags().GetBool("force")
			return InitConfig(outputPath, force)
		},
	}

	cmd.Flags().StringP("output", "o", constants.DefaultConfigFileName, "Configuration file to write")
	cmd.Flags().Bool("force", false, "Overwrite an existing file")

	return cmd
}

// InitConfig writes the example configuration to outputPath. An existing file
// is only overwritten with force.
func InitConfig(outputPath string, force bool) error {
	if fileutil.FileExists(outputPath) && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", outputPath)
	}

	data, err := yaml.Marshal(validator.ExampleConfig())
	if err != nil {
		return fmt.Errorf("failed to render example config: %w", err)
	}

	header := []byte("# Notebook validation rules for " + constants.ToolName + ".\n" +
		"# Severities: error, warning, info. Disable any rule with enabled: false.\n")
	if err := fileutil.WriteFileWithDir(outputPath, append(header, data...), 0644); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Created "+outputPath))
	return nil
}
