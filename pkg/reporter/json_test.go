//go:build !integration

package reporter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertex-tools/nbcheck/pkg/validator"
)

func sampleReports() []*validator.Report {
	cellIndex := 2
	return []*validator.Report{
		{
			NotebookPath: "notebooks/good.ipynb",
			IsValid:      true,
			Metadata:     &validator.Metadata{Title: "Good Notebook"},
			Timestamp:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			NotebookPath: "notebooks/bad.ipynb",
			IsValid:      false,
			Findings: []validator.Finding{
				{RuleID: "structure.require_title", Severity: validator.SeverityError, Message: "missing title"},
				{RuleID: "content.markdown_links", Severity: validator.SeverityWarning, Message: "broken link", CellIndex: &cellIndex},
				{RuleID: "content.documentation", Severity: validator.SeverityInfo, Message: "low ratio"},
			},
			ExecutionTime: 0.42,
			Timestamp:     time.Date(2024, 3, 1, 12, 0, 1, 0, time.UTC),
		},
	}
}

func TestBuildPayloadSummary(t *testing.T) {
	payload := BuildPayload(sampleReports())

	assert.Equal(t, 2, payload.Summary.Total)
	assert.Equal(t, 1, payload.Summary.Passed)
	assert.Equal(t, 1, payload.Summary.Failed)
	assert.Equal(t, 1, payload.Summary.TotalErrors)
	assert.Equal(t, 1, payload.Summary.TotalWarnings)
	assert.Equal(t, 1, payload.Summary.TotalInfo)
}

func TestBuildPayloadPerReportSummary(t *testing.T) {
	payload := BuildPayload(sampleReports())
	require.Len(t, payload.Reports, 2)

	assert.Equal(t, ReportSummary{}, payload.Reports[0].Summary)
	assert.Equal(t, ReportSummary{Errors: 1, Warnings: 1, Info: 1}, payload.Reports[1].Summary)
	assert.Equal(t, "2024-03-01T12:00:01Z", payload.Reports[1].Timestamp)
}

func TestJSONEmptyFindingsIsArray(t *testing.T) {
	data, err := JSON(sampleReports())
	require.NoError(t, err)

	// A report with no findings serializes an empty array, not null.
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	reports := decoded["reports"].([]any)
	first := reports[0].(map[string]any)
	findings, ok := first["findings"].([]any)
	require.True(t, ok, "findings must be an array")
	assert.Empty(t, findings)
}

func TestJSONRoundTrip(t *testing.T) {
	data, err := JSON(sampleReports())
	require.NoError(t, err)

	var payload Payload
	require.NoError(t, json.Unmarshal(data, &payload))

	require.Len(t, payload.Reports, 2)
	assert.Equal(t, "notebooks/bad.ipynb", payload.Reports[1].NotebookPath)
	assert.False(t, payload.Reports[1].IsValid)

	findings := payload.Reports[1].Findings
	require.Len(t, findings, 3)
	assert.Equal(t, validator.SeverityError, findings[0].Severity)
	assert.Equal(t, validator.SeverityWarning, findings[1].Severity)
	assert.Equal(t, validator.SeverityInfo, findings[2].Severity)
	require.NotNil(t, findings[1].CellIndex)
	assert.Equal(t, 2, *findings[1].CellIndex)

	assert.Equal(t, "Good Notebook", payload.Reports[0].Metadata.Title)
}

func TestJSONEmptyRun(t *testing.T) {
	payload := BuildPayload(nil)
	assert.Equal(t, 0, payload.Summary.Total)
	assert.NotNil(t, payload.Reports)
}
