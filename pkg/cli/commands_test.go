//go:build !integration

package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertex-tools/nbcheck/pkg/validator"
)

const goodNotebookJSON = `{
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

const badNotebookJSON = `{
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

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateNotebookCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.ipynb", goodNotebookJSON)
	bad := writeFile(t, dir, "bad.ipynb", badNotebookJSON)

	t.Run("valid notebook succeeds", func(t *testing.T) {
		out := filepath.Join(dir, "good.json")
		err := ValidateNotebook(good, "", nil, FormatJSON, out, false)
		require.NoError(t, err)
		assert.FileExists(t, out)
	})

	t.Run("invalid notebook fails with the sentinel", func(t *testing.T) {
		out := filepath.Join(dir, "bad.json")
		err := ValidateNotebook(bad, "", nil, FormatJSON, out, false)
		require.ErrorIs(t, err, errValidationFailed)
	})

	t.Run("strict mode fails on warnings", func(t *testing.T) {
		warn := writeFile(t, dir, "warn.ipynb", `{
  "cells": [
    {"cell_type": "markdown", "metadata": {}, "source": "# Title\n\nA sufficiently long description of what this notebook is about."},
    {"cell_type": "code", "metadata": {}, "outputs": [], "execution_count": null, "source": "!pip install pandas"}
  ],
  "metadata": {},
  "nbformat": 4,
  "nbformat_minor": 5
}`)
		out := filepath.Join(dir, "warn.json")
		require.NoError(t, ValidateNotebook(warn, "", nil, FormatJSON, out, false))
		require.ErrorIs(t, ValidateNotebook(warn, "", nil, FormatJSON, out, true), errValidationFailed)
	})

	t.Run("unsupported format", func(t *testing.T) {
		err := ValidateNotebook(good, "", nil, "xml", "", false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format")
	})

	t.Run("json report content", func(t *testing.T) {
		out := filepath.Join(dir, "report.json")
		require.ErrorIs(t, ValidateNotebook(bad, "", nil, FormatJSON, out, false), errValidationFailed)

		data, err := os.ReadFile(out)
		require.NoError(t, err)

		var payload struct {
			Summary struct {
				Total  int `json:"total"`
				Failed int `json:"failed"`
			} `json:"summary"`
			Reports []struct {
				IsValid bool `json:"is_valid"`
			} `json:"reports"`
		}
		require.NoError(t, json.Unmarshal(data, &payload))
		assert.Equal(t, 1, payload.Summary.Total)
		assert.Equal(t, 1, payload.Summary.Failed)
		require.Len(t, payload.Reports, 1)
		assert.False(t, payload.Reports[0].IsValid)
	})
}

func TestValidateDirectoryCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.ipynb", goodNotebookJSON)

	t.Run("all valid succeeds", func(t *testing.T) {
		out := filepath.Join(dir, "report.json")
		err := ValidateDirectory(dir, "", validator.DirectoryOptions{Recursive: true}, FormatJSON, out, false)
		require.NoError(t, err)
	})

	t.Run("any invalid fails", func(t *testing.T) {
		writeFile(t, dir, "bad.ipynb", badNotebookJSON)
		out := filepath.Join(dir, "report.json")
		err := ValidateDirectory(dir, "", validator.DirectoryOptions{Recursive: true}, FormatJSON, out, false)
		require.ErrorIs(t, err, errValidationFailed)
	})

	t.Run("empty directory succeeds", func(t *testing.T) {
		err := ValidateDirectory(t.TempDir(), "", validator.DirectoryOptions{Recursive: true}, FormatJSON, "", false)
		require.NoError(t, err)
	})
}

func TestExtractMetadataCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.ipynb", goodNotebookJSON)

	t.Run("json output", func(t *testing.T) {
		out := filepath.Join(dir, "meta.json")
		require.NoError(t, ExtractMetadata(good, FormatJSON, out))

		data, err := os.ReadFile(out)
		require.NoError(t, err)

		var meta map[string]any
		require.NoError(t, json.Unmarshal(data, &meta))
		assert.Equal(t, "Tabular Classification Tutorial", meta["title"])
		assert.Contains(t, meta, "dependencies")
		assert.Contains(t, meta, "vertex_ai_services")
	})

	t.Run("yaml output", func(t *testing.T) {
		out := filepath.Join(dir, "meta.yaml")
		require.NoError(t, ExtractMetadata(good, FormatYAML, out))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Tabular Classification Tutorial")
	})

	t.Run("unreadable notebook is an error", func(t *testing.T) {
		err := ExtractMetadata(filepath.Join(dir, "missing.ipynb"), FormatJSON, "")
		require.Error(t, err)
	})
}

func TestInitConfigCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "validation_rules.yaml")

	require.NoError(t, InitConfig(path, false))
	assert.FileExists(t, path)

	// The generated file loads back cleanly with its severities resolved.
	cfg, err := validator.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, validator.SeverityError, cfg.Structure.RuleSeverity("require_title", validator.SeverityInfo))
	assert.Contains(t, cfg.Dependencies.Rule("version_pinning").AllowUnpinned, "google-cloud-aiplatform")

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		err := InitConfig(path, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("force overwrites", func(t *testing.T) {
		require.NoError(t, InitConfig(path, true))
	})
}

func TestRootCommandWiring(t *testing.T) {
	root := NewRootCommand()

	names := make(map[string]bool)
	for _, sub := range root.Commands() {
		names[sub.Name()] = true
	}

	for _, expected := range []string{"validate", "validate-dir", "extract-metadata", "init-config"} {
		assert.True(t, names[expected], "missing subcommand %s", expected)
	}
}
