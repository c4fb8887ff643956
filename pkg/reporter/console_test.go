//go:build !integration

package reporter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vertex-tools/nbcheck/pkg/validator"
)

func TestConsoleSingleReportPassed(t *testing.T) {
	report := &validator.Report{
		NotebookPath:  "notebooks/good.ipynb",
		IsValid:       true,
		ExecutionTime: 0.05,
	}

	output := Console([]*validator.Report{report})

	assert.Contains(t, output, "Validating:")
	assert.Contains(t, output, "notebooks/good.ipynb")
	assert.Contains(t, output, "Validation: PASSED")
	assert.Contains(t, output, "Execution time: 0.05s")
	assert.NotContains(t, output, "FAILED")
}

func TestConsoleSingleReportFailed(t *testing.T) {
	cellIndex := 3
	lineNumber := 7
	report := &validator.Report{
		NotebookPath: "notebooks/bad.ipynb",
		IsValid:      false,
		Findings: []validator.Finding{
			{
				RuleID:     "content.hardcoded_values",
				Severity:   validator.SeverityError,
				Message:    "Hardcoded project_id found",
				CellIndex:  &cellIndex,
				LineNumber: &lineNumber,
				Suggestion: "Use an environment variable",
			},
			{
				RuleID:   "metadata.license_info",
				Severity: validator.SeverityWarning,
				Message:  "No license information found",
			},
		},
	}

	output := Console([]*validator.Report{report})

	assert.Contains(t, output, "Errors:")
	assert.Contains(t, output, "Hardcoded project_id found")
	assert.Contains(t, output, "(cell 3, line 7)")
	assert.Contains(t, output, "Use an environment variable")
	assert.Contains(t, output, "Warnings:")
	assert.Contains(t, output, "No license information found")
	assert.Contains(t, output, "Validation: FAILED")
	assert.Contains(t, output, "Fix the errors above")
	assert.Contains(t, output, "1 errors")
	assert.Contains(t, output, "1 warnings")
	assert.Contains(t, output, "0 info")
}

func TestConsoleSingleReportGroupsBySeverity(t *testing.T) {
	report := &validator.Report{
		NotebookPath: "nb.ipynb",
		Findings: []validator.Finding{
			{Severity: validator.SeverityInfo, Message: "an info note"},
			{Severity: validator.SeverityError, Message: "an error note"},
		},
	}

	output := Console([]*validator.Report{report})

	// Errors render before info regardless of finding order.
	assert.Less(t, strings.Index(output, "an error note"), strings.Index(output, "an info note"))
}

func TestConsoleSummaryReport(t *testing.T) {
	reports := []*validator.Report{
		{NotebookPath: "a.ipynb", IsValid: true},
		{
			NotebookPath: "b.ipynb",
			IsValid:      false,
			Findings: []validator.Finding{
				{Severity: validator.SeverityError, Message: "broken"},
			},
		},
		{
			NotebookPath: "c.ipynb",
			IsValid:      true,
			Findings: []validator.Finding{
				{Severity: validator.SeverityWarning, Message: "minor"},
			},
		},
	}

	output := Console(reports)

	assert.Contains(t, output, "Validation Summary")
	assert.Contains(t, output, "Total notebooks: 3")
	assert.Contains(t, output, "Passed: 2")
	assert.Contains(t, output, "Failed: 1")
	assert.Contains(t, output, "Failed Notebooks:")
	assert.Contains(t, output, "b.ipynb (1 errors, 0 warnings)")
	assert.Contains(t, output, "Passed Notebooks:")
	assert.Contains(t, output, "c.ipynb (1 warnings)")
}
