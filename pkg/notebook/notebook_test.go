//go:build !integration

package notebook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSourceEncodings(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "source as single string",
			raw:      `{"nbformat": 4, "nbformat_minor": 5, "metadata": {}, "cells": [{"cell_type": "markdown", "source": "# Title\nBody"}]}`,
			expected: "# Title\nBody",
		},
		{
			name:     "source as line array",
			raw:      `{"nbformat": 4, "nbformat_minor": 5, "metadata": {}, "cells": [{"cell_type": "markdown", "source": ["# Title\n", "Body"]}]}`,
			expected: "# Title\nBody",
		},
		{
			name:     "empty line array",
			raw:      `{"nbformat": 4, "nbformat_minor": 5, "metadata": {}, "cells": [{"cell_type": "code", "source": []}]}`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nb, err := Parse([]byte(tt.raw), "test.ipynb")
			require.NoError(t, err)
			require.Len(t, nb.Cells, 1)
			assert.Equal(t, tt.expected, string(nb.Cells[0].Source))
		})
	}
}

func TestParseRejectsOldFormat(t *testing.T) {
	raw := `{"nbformat": 3, "nbformat_minor": 0, "metadata": {}, "cells": []}`
	_, err := Parse([]byte(raw), "old.ipynb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported nbformat version 3")
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte("{not json"), "bad.ipynb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse notebook")
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.ipynb"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read notebook")
}

func TestReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.ipynb")
	raw := `{
		"nbformat": 4,
		"nbformat_minor": 5,
		"metadata": {"title": "Sample", "tags": ["automl", "tabular"]},
		"cells": [
			{"cell_type": "markdown", "source": "# Sample\n"},
			{"cell_type": "code", "source": "print('hi')", "outputs": [], "execution_count": 1}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	nb, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, path, nb.Path)
	assert.Equal(t, 1, nb.MarkdownCellCount())
	assert.Equal(t, 1, nb.CodeCellCount())

	title, ok := nb.MetaString("title")
	assert.True(t, ok)
	assert.Equal(t, "Sample", title)

	tags, ok := nb.MetaStringSlice("tags")
	assert.True(t, ok)
	assert.Equal(t, []string{"automl", "tabular"}, tags)

	require.NotNil(t, nb.Cells[1].ExecutionCount)
	assert.Equal(t, 1, *nb.Cells[1].ExecutionCount)
}

func TestTextHelpers(t *testing.T) {
	nb := &Notebook{
		Cells: []Cell{
			{Type: CellTypeMarkdown, Source: "# A"},
			{Type: CellTypeCode, Source: "import os"},
			{Type: CellTypeMarkdown, Source: "text"},
		},
	}

	assert.Equal(t, "# A\ntext", nb.MarkdownText())
	assert.Equal(t, "import os", nb.CodeText())
	assert.Equal(t, "# A\nimport os\ntext", nb.AllText())
}
