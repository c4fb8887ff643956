//go:build !integration

package validator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vertex-tools/nbcheck/pkg/notebook"
)

// Notebook builders shared by the rule category tests.

func markdownCell(source string) notebook.Cell {
	return notebook.Cell{Type: notebook.CellTypeMarkdown, Source: notebook.SourceText(source)}
}

func codeCell(source string) notebook.Cell {
	return notebook.Cell{Type: notebook.CellTypeCode, Source: notebook.SourceText(source)}
}

func buildNotebook(cells ...notebook.Cell) *notebook.Notebook {
	return &notebook.Notebook{
		Cells:    cells,
		Metadata: map[string]any{},
		NBFormat: 4,
	}
}

// wellFormedNotebookJSON passes every rule category under the default
// configuration.
const wellFormedNotebookJSON = `{
  "cells": [
    {
      "cell_type": "markdown",
      "metadata": {},
      "source": "# Tabular Classification Tutorial\n\nThis notebook trains and deploys a tabular classification model on Vertex AI.\n\nLicensed under the Apache License, Version 2.0."
    },
    {
      "cell_type": "markdown",
      "metadata": {},
      "source": "## Overview\n\nThe objective is to walk through model training end to end."
    },
    {
      "cell_type": "markdown",
      "metadata": {},
      "source": "## Setup\n\nInstall the required packages."
    },
    {
      "cell_type": "code",
      "metadata": {},
      "outputs": [],
      "execution_count": null,
      "source": "import os\nfrom google.cloud import aiplatform"
    },
    {
      "cell_type": "code",
      "metadata": {},
      "outputs": [],
      "execution_count": null,
      "source": "!pip install google-cloud-aiplatform==1.38.0"
    }
  ],
  "metadata": {},
  "nbformat": 4,
  "nbformat_minor": 5
}`

// brokenNotebookJSON fails with ERROR findings: no title and a hardcoded
// project identifier.
const brokenNotebookJSON = `{
  "cells": [
    {
      "cell_type": "code",
      "metadata": {},
      "outputs": [],
      "execution_count": null,
      "source": "project_id = \"my-prod-project\""
    }
  ],
  "metadata": {},
  "nbformat": 4,
  "nbformat_minor": 5
}`

func writeNotebookFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func findingRuleIDs(findings []Finding) []string {
	ids := make([]string, 0, len(findings))
	for _, f := range findings {
		ids = append(ids, f.RuleID)
	}
	return ids
}
