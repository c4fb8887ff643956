// Package console provides styled message formatting for CLI output.
// All user-facing status messages go through these helpers so styling stays
// consistent across commands.
package console

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// IsTTY reports whether stdout is attached to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// FormatErrorMessage formats an error message for console display.
func FormatErrorMessage(msg string) string {
	return errorStyle.Render("✗ " + msg)
}

// FormatWarningMessage formats a warning message for console display.
func FormatWarningMessage(msg string) string {
	return warningStyle.Render("⚠ " + msg)
}

// FormatSuccessMessage formats a success message for console display.
func FormatSuccessMessage(msg string) string {
	return successStyle.Render("✓ " + msg)
}

// FormatInfoMessage formats an informational message for console display.
func FormatInfoMessage(msg string) string {
	return infoStyle.Render("ℹ " + msg)
}

// FormatProgressMessage formats a progress message for console display.
func FormatProgressMessage(msg string) string {
	return dimStyle.Render("… " + msg)
}

// Bold renders text in bold.
func Bold(msg string) string {
	return boldStyle.Render(msg)
}

// Dim renders text faintly.
func Dim(msg string) string {
	return dimStyle.Render(msg)
}

// Red, Yellow, Green and Blue render text in the severity palette without a
// leading symbol. Used by reporters that lay out their own structure.
func Red(msg string) string    { return errorStyle.Render(msg) }
func Yellow(msg string) string { return warningStyle.Render(msg) }
func Green(msg string) string  { return successStyle.Render(msg) }
func Blue(msg string) string   { return infoStyle.Render(msg) }

// TableConfig describes a simple console table.
type TableConfig struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTable renders a plain aligned table with a header separator.
func RenderTable(config TableConfig) string {
	var output strings.Builder

	if config.Title != "" {
		output.WriteString(Bold(config.Title))
		output.WriteString("\n")
	}

	widths := make([]int, len(config.Headers))
	for i, h := range config.Headers {
		widths[i] = len(h)
	}
	for _, row := range config.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				output.WriteString("  ")
			}
			fmt.Fprintf(&output, "%-*s", widths[i], cell)
		}
		output.WriteString("\n")
	}

	writeRow(config.Headers)
	total := 2 * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	output.WriteString(strings.Repeat("-", total))
	output.WriteString("\n")
	for _, row := range config.Rows {
		writeRow(row)
	}

	return output.String()
}
