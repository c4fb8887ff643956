//go:build !integration

package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageFormatting(t *testing.T) {
	tests := []struct {
		name    string
		format  func(string) string
		message string
		symbol  string
	}{
		{name: "error message", format: FormatErrorMessage, message: "something broke", symbol: "✗"},
		{name: "warning message", format: FormatWarningMessage, message: "careful", symbol: "⚠"},
		{name: "success message", format: FormatSuccessMessage, message: "all good", symbol: "✓"},
		{name: "info message", format: FormatInfoMessage, message: "fyi", symbol: "ℹ"},
		{name: "progress message", format: FormatProgressMessage, message: "working", symbol: "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.format(tt.message)
			assert.Contains(t, output, tt.message)
			assert.Contains(t, output, tt.symbol)
		})
	}
}

func TestRenderTable(t *testing.T) {
	output := RenderTable(TableConfig{
		Title:   "Results",
		Headers: []string{"Notebook", "Status"},
		Rows: [][]string{
			{"intro.ipynb", "passed"},
			{"training_pipeline.ipynb", "failed"},
		},
	})

	assert.Contains(t, output, "Results")
	assert.Contains(t, output, "Notebook")
	assert.Contains(t, output, "intro.ipynb")
	assert.Contains(t, output, "training_pipeline.ipynb")

	// Header separator line is present
	assert.True(t, strings.Contains(output, "----"))
}

func TestRenderTableAlignsColumns(t *testing.T) {
	output := RenderTable(TableConfig{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"aaaa", "b"}},
	})

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	assert.Len(t, lines, 3)
	// Column B starts at the same offset in header and row
	assert.Equal(t, strings.Index(lines[0], "B"), strings.Index(lines[2], "b"))
}
