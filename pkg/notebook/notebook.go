// Package notebook implements the Jupyter notebook document model consumed by
// the validation engine. Notebooks are parsed from nbformat v4 JSON and are
// immutable once loaded.
package notebook

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/vertex-tools/nbcheck/pkg/constants"
	"github.com/vertex-tools/nbcheck/pkg/logger"
)

var log = logger.New("notebook:notebook")

// Cell types as defined by the nbformat spec.
const (
	CellTypeMarkdown = "markdown"
	CellTypeCode     = "code"
)

// SourceText is a notebook text field that may be serialized either as a
// single JSON string or as an array of line strings (lines keep their
// trailing newlines, so the array form is joined without a separator).
type SourceText string

// UnmarshalJSON implements json.Unmarshaler for both source encodings.
func (s *SourceText) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = SourceText(single)
		return nil
	}

	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("source must be a string or an array of strings: %w", err)
	}
	*s = SourceText(strings.Join(lines, ""))
	return nil
}

// MarshalJSON implements json.Marshaler, always emitting the string form.
func (s SourceText) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// Output is a single execution output attached to a code cell.
type Output struct {
	OutputType string         `json:"output_type"`
	Name       string         `json:"name,omitempty"`
	Text       SourceText     `json:"text,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
}

// Cell is a single markdown or code unit within a notebook.
type Cell struct {
	Type           string         `json:"cell_type"`
	Source         SourceText     `json:"source"`
	Outputs        []Output       `json:"outputs,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	ExecutionCount *int           `json:"execution_count,omitempty"`
}

// IsMarkdown reports whether the cell is a markdown cell.
func (c *Cell) IsMarkdown() bool { return c.Type == CellTypeMarkdown }

// IsCode reports whether the cell is a code cell.
func (c *Cell) IsCode() bool { return c.Type == CellTypeCode }

// Notebook is an ordered sequence of cells plus notebook-level metadata.
type Notebook struct {
	Cells         []Cell         `json:"cells"`
	Metadata      map[string]any `json:"metadata"`
	NBFormat      int            `json:"nbformat"`
	NBFormatMinor int            `json:"nbformat_minor"`

	// Path is the file the notebook was read from. Empty for notebooks
	// constructed in memory.
	Path string `json:"-"`
}

// Read loads and parses a notebook file.
func Read(path string) (*Notebook, error) {
	log.Printf("Reading notebook: path=%s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read notebook: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes notebook JSON. Notebooks older than nbformat v4 are rejected.
func Parse(data []byte, path string) (*Notebook, error) {
	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("failed to parse notebook: %w", err)
	}
	if nb.NBFormat < constants.MinNotebookFormatVersion {
		return nil, fmt.Errorf("unsupported nbformat version %d (minimum %d)", nb.NBFormat, constants.MinNotebookFormatVersion)
	}
	nb.Path = path
	log.Printf("Parsed notebook: path=%s, cells=%d, nbformat=%d", path, len(nb.Cells), nb.NBFormat)
	return &nb, nil
}

// MetaString returns a string-valued notebook metadata entry.
func (nb *Notebook) MetaString(key string) (string, bool) {
	v, ok := nb.Metadata[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// MetaStringSlice returns a list-of-strings notebook metadata entry.
// Non-string elements are skipped.
func (nb *Notebook) MetaStringSlice(key string) ([]string, bool) {
	v, ok := nb.Metadata[key]
	if !ok {
		return nil, false
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	var out []string
	for _, e := range raw {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// MarkdownText returns the concatenated source of all markdown cells.
func (nb *Notebook) MarkdownText() string {
	return nb.joinSources(CellTypeMarkdown)
}

// CodeText returns the concatenated source of all code cells.
func (nb *Notebook) CodeText() string {
	return nb.joinSources(CellTypeCode)
}

// AllText returns the concatenated source of every cell.
func (nb *Notebook) AllText() string {
	return nb.joinSources("")
}

func (nb *Notebook) joinSources(cellType string) string {
	var parts []string
	for i := range nb.Cells {
		if cellType == "" || nb.Cells[i].Type == cellType {
			parts = append(parts, string(nb.Cells[i].Source))
		}
	}
	return strings.Join(parts, "\n")
}

// MarkdownCellCount returns the number of markdown cells.
func (nb *Notebook) MarkdownCellCount() int {
	return nb.countCells(CellTypeMarkdown)
}

// CodeCellCount returns the number of code cells.
func (nb *Notebook) CodeCellCount() int {
	return nb.countCells(CellTypeCode)
}

func (nb *Notebook) countCells(cellType string) int {
	count := 0
	for i := range nb.Cells {
		if nb.Cells[i].Type == cellType {
			count++
		}
	}
	return count
}
