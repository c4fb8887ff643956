package cli

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/vertex-tools/nbcheck/pkg/constants"
	"github.com/vertex-tools/nbcheck/pkg/logger"
	"github.com/vertex-tools/nbcheck/pkg/notebook"
	"github.com/vertex-tools/nbcheck/pkg/validator"
)

var extractLog = logger.New("cli:extract_metadata_command")

// NewExtractMetadataCommand creates the extract-metadata command
func NewExtractMetadataCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract-metadata <notebook>",
		Short: "Extract structured metadata from a notebook",
		Long: `Extract structured metadata from a notebook without validating it.

Extraction is best-effort: fields that cannot be derived from the notebook
come back null or empty rather than failing the command. Only an unreadable
or unparseable notebook is an error.

Examples:
  ` + constants.ToolName + ` extract-metadata notebook.ipynb
  ` + constants.ToolName + ` extract-metadata notebook.ipynb --format yaml
  ` + constants.ToolName + ` extract-metadata notebook.ipynb --output metadata.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			outputPath, _ := cmd.Flags().GetString("output")
			return ExtractMetadata(args[0], format, outputPath)
		},
	}

	cmd.Flags().StringP("format", "f", FormatJSON, "Output format: json or yaml")
	cmd.Flags().StringP("output", "o", "", "Write metadata to a file instead of stdout")

	return cmd
}

// ExtractMetadata reads a notebook, extracts its metadata, and renders the
// record as JSON or YAML.
func ExtractMetadata(path, format, outputPath string) error {
	nb, err := notebook.Read(path)
	if err != nil {
		return err
	}

	extractLog.Printf("Extracting metadata: path=%s, format=%s", path, format)
	meta := validator.ExtractMetadata(nb)

	var data []byte
	switch format {
	case FormatJSON, "":
		rendered, marshalErr := json.MarshalIndent(meta, "", "  ")
		if marshalErr != nil {
			return fmt.Errorf("failed to render metadata: %w", marshalErr)
		}
		data = append(rendered, '\n')
	case FormatYAML:
		rendered, marshalErr := yaml.Marshal(meta)
		if marshalErr != nil {
			return fmt.Errorf("failed to render metadata: %w", marshalErr)
		}
		data = rendered
	default:
		return fmt.Errorf("unsupported format %q (expected %s or %s)", format, FormatJSON, FormatYAML)
	}

	return writeOutput(data, outputPath)
}
