package validator

import "github.com/vertex-tools/nbcheck/pkg/notebook"

// Category names. Rule IDs are namespaced "<category>.<rule>".
const (
	CategoryStructure    = "structure"
	CategoryContent      = "content"
	CategoryMetadata     = "metadata"
	CategoryDependencies = "dependencies"
)

// CategoryValidator is one pluggable rule category. Implementations are pure
// functions of an immutable notebook and their category configuration: they
// must not mutate the notebook and must not fail for any well-formed
// notebook. The orchestrator recovers panics into findings, so a category
// that does blow up cannot take the run down with it.
type CategoryValidator interface {
	// Name returns the category name used in rule IDs and configuration.
	Name() string

	// Validate runs every enabled rule of the category and returns its
	// findings in deterministic order.
	Validate(nb *notebook.Notebook, cfg CategoryConfig) []Finding
}

// defaultCategories returns the built-in rule categories in their canonical
// run order.
func defaultCategories() []CategoryValidator {
	return []CategoryValidator{
		&StructureValidator{},
		&ContentValidator{},
		&MetadataValidator{},
		&DependencyValidator{},
	}
}
