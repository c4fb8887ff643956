// Package reporter renders validation reports for humans (console) and
// machines (JSON). Both renderers are pure transforms of immutable reports.
package reporter

import (
	"encoding/json"
	"time"

	"github.com/vertex-tools/nbcheck/pkg/validator"
)

// Summary aggregates results across every report in a run.
type Summary struct {
	Total         int `json:"total"`
	Passed        int `json:"passed"`
	Failed        int `json:"failed"`
	TotalErrors   int `json:"total_errors"`
	TotalWarnings int `json:"total_warnings"`
	TotalInfo     int `json:"total_info"`
}

// ReportSummary carries the per-report severity counts. The counts are
// recomputed from the findings list at render time, never stored.
type ReportSummary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
}

// ReportPayload is the wire form of a single report.
type ReportPayload struct {
	NotebookPath  string              `json:"notebook_path"`
	IsValid       bool                `json:"is_valid"`
	Findings      []validator.Finding `json:"findings"`
	Metadata      *validator.Metadata `json:"metadata"`
	ExecutionTime float64             `json:"execution_time"`
	Timestamp     string              `json:"timestamp"`
	Summary       ReportSummary       `json:"summary"`
}

// Payload is the complete structured output of a run.
type Payload struct {
	Summary Summary         `json:"summary"`
	Reports []ReportPayload `json:"reports"`
}

// BuildPayload assembles the structured output for a list of reports.
func BuildPayload(reports []*validator.Report) Payload {
	payload := Payload{
		Reports: make([]ReportPayload, 0, len(reports)),
	}
	payload.Summary.Total = len(reports)

	for _, r := range reports {
		if r.IsValid {
			payload.Summary.Passed++
		} else {
			payload.Summary.Failed++
		}
		payload.Summary.TotalErrors += r.ErrorCount()
		payload.Summary.TotalWarnings += r.WarningCount()
		payload.Summary.TotalInfo += r.InfoCount()

		findings := r.Findings
		if findings == nil {
			findings = []validator.Finding{}
		}

		payload.Reports = append(payload.Reports, ReportPayload{
			NotebookPath:  r.NotebookPath,
			IsValid:       r.IsValid,
			Findings:      findings,
			Metadata:      r.Metadata,
			ExecutionTime: r.ExecutionTime,
			Timestamp:     r.Timestamp.Format(time.RFC3339),
			Summary: ReportSummary{
				Errors:   r.ErrorCount(),
				Warnings: r.WarningCount(),
				Info:     r.InfoCount(),
			},
		})
	}

	return payload
}

// JSON renders reports as indented JSON.
func JSON(reports []*validator.Report) ([]byte, error) {
	return json.MarshalIndent(BuildPayload(reports), "", "  ")
}
