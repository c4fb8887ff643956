package reporter

import (
	"fmt"
	"strings"

	"github.com/vertex-tools/nbcheck/pkg/console"
	"github.com/vertex-tools/nbcheck/pkg/validator"
)

const separatorWidth = 80

// Console renders reports for terminal display. A single report gets the
// detailed per-finding view; multiple reports get the summary view.
func Console(reports []*validator.Report) string {
	if len(reports) == 1 {
		return singleReport(reports[0])
	}
	return summaryReport(reports)
}

func singleReport(report *validator.Report) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, console.Bold("Validating:")+" "+report.NotebookPath)
	lines = append(lines, strings.Repeat("=", separatorWidth))

	groups := []struct {
		severity validator.Severity
		title    string
		style    func(string) string
		bullet   string
	}{
		{validator.SeverityError, "Errors:", console.Red, "✗"},
		{validator.SeverityWarning, "Warnings:", console.Yellow, "⚠"},
		{validator.SeverityInfo, "Info:", console.Blue, "ℹ"},
	}

	for _, group := range groups {
		var members []validator.Finding
		for _, f := range report.Findings {
			if f.Severity == group.severity {
				members = append(members, f)
			}
		}
		if len(members) == 0 {
			continue
		}

		lines = append(lines, "", group.style(console.Bold(group.title)))
		for _, f := range members {
			lines = append(lines, formatFinding(f, group.style))
		}
	}

	lines = append(lines, "", strings.Repeat("=", separatorWidth))
	lines = append(lines, console.Bold("Summary:"))
	lines = append(lines, fmt.Sprintf("  %s %d errors", console.Red("✗"), report.ErrorCount()))
	lines = append(lines, fmt.Sprintf("  %s %d warnings", console.Yellow("⚠"), report.WarningCount()))
	lines = append(lines, fmt.Sprintf("  %s %d info", console.Blue("ℹ"), report.InfoCount()))

	if report.IsValid {
		lines = append(lines, "", console.Green(console.Bold("✓ Validation: PASSED")))
	} else {
		lines = append(lines, "", console.Red(console.Bold("✗ Validation: FAILED")))
		lines = append(lines, "", console.Yellow("Fix the errors above and re-run validation."))
	}

	lines = append(lines, "", fmt.Sprintf("Execution time: %.2fs", report.ExecutionTime))

	return strings.Join(lines, "\n")
}

func formatFinding(f validator.Finding, style func(string) string) string {
	location := ""
	if f.CellIndex != nil {
		location = fmt.Sprintf(" (cell %d", *f.CellIndex)
		if f.LineNumber != nil {
			location += fmt.Sprintf(", line %d", *f.LineNumber)
		}
		location += ")"
	}

	line := fmt.Sprintf("  %s %s%s", style("●"), f.Message, location)
	if f.Suggestion != "" {
		line += fmt.Sprintf("\n    %s %s", console.Blue("→"), f.Suggestion)
	}
	return line
}

func summaryReport(reports []*validator.Report) string {
	var lines []string

	summary := BuildPayload(reports).Summary

	lines = append(lines, "")
	lines = append(lines, console.Bold("Validation Summary"))
	lines = append(lines, strings.Repeat("=", separatorWidth))

	lines = append(lines, "", fmt.Sprintf("Total notebooks: %d", summary.Total))
	lines = append(lines, fmt.Sprintf("  %s Passed: %d", console.Green("✓"), summary.Passed))
	lines = append(lines, fmt.Sprintf("  %s Failed: %d", console.Red("✗"), summary.Failed))
	lines = append(lines, "", "Total issues:")
	lines = append(lines, fmt.Sprintf("  %s Errors: %d", console.Red("✗"), summary.TotalErrors))
	lines = append(lines, fmt.Sprintf("  %s Warnings: %d", console.Yellow("⚠"), summary.TotalWarnings))
	lines = append(lines, fmt.Sprintf("  %s Info: %d", console.Blue("ℹ"), summary.TotalInfo))

	if summary.Failed > 0 {
		lines = append(lines, "", console.Red(console.Bold("Failed Notebooks:")))
		for _, report := range reports {
			if !report.IsValid {
				lines = append(lines, fmt.Sprintf("  %s %s (%d errors, %d warnings)",
					console.Red("✗"), report.NotebookPath, report.ErrorCount(), report.WarningCount()))
			}
		}
	}

	if summary.Passed > 0 {
		lines = append(lines, "", console.Green(console.Bold("Passed Notebooks:")))
		for _, report := range reports {
			if report.IsValid {
				status := ""
				if report.WarningCount() > 0 {
					status = fmt.Sprintf(" (%d warnings)", report.WarningCount())
				}
				lines = append(lines, fmt.Sprintf("  %s %s%s", console.Green("✓"), report.NotebookPath, status))
			}
		}
	}

	return strings.Join(lines, "\n")
}
