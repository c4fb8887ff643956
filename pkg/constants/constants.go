// Package constants defines shared constants for the nbcheck tool.
package constants

const (
	// ToolName is the binary name of the CLI.
	ToolName = "nbcheck"

	// Version is the tool version reported by the root command.
	Version = "1.0.0"

	// MinNotebookFormatVersion is the minimum supported nbformat major version.
	MinNotebookFormatVersion = 4

	// CheckpointDirMarker is the path segment used by Jupyter for autosave
	// copies. Files under such directories are never validated.
	CheckpointDirMarker = ".ipynb_checkpoints"

	// OfficialPathMarker is the path segment that marks a notebook as part of
	// the official collection, which makes some metadata rules mandatory.
	OfficialPathMarker = "official"

	// DefaultNotebookPattern is the glob pattern used by directory validation.
	DefaultNotebookPattern = "*.ipynb"

	// DefaultConfigFileName is the file name emitted by init-config.
	DefaultConfigFileName = "validation_rules.yaml"

	// DefaultMaxWorkers bounds the directory validation worker pool.
	DefaultMaxWorkers = 4
)
