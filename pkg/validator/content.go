package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vertex-tools/nbcheck/pkg/logger"
	"github.com/vertex-tools/nbcheck/pkg/notebook"
)

var contentLog = logger.New("validator:content")

// Defaults for content rules.
const (
	defaultMaxOutputSize    = 10000
	defaultMinMarkdownRatio = 0.2

	// maxConsecutiveCodeCells is the longest run of code cells tolerated
	// without an intervening markdown cell.
	maxConsecutiveCodeCells = 5
)

// ContentValidator checks notebook content quality: hardcoded values, output
// size, markdown links and documentation density.
type ContentValidator struct{}

// Name implements CategoryValidator.
func (v *ContentValidator) Name() string { return CategoryContent }

var contentBaselines = map[string]Severity{
	"hardcoded_values": SeverityError,
	"output_cells":     SeverityWarning,
	"markdown_links":   SeverityWarning,
	"documentation":    SeverityInfo,
}

// Validate implements CategoryValidator.
func (v *ContentValidator) Validate(nb *notebook.Notebook, cfg CategoryConfig) []Finding {
	var findings []Finding

	if cfg.RuleEnabled("hardcoded_values") {
		findings = append(findings, v.checkHardcodedValues(nb, cfg)...)
	}
	if cfg.RuleEnabled("output_cells") {
		findings = append(findings, v.checkOutputCells(nb, cfg)...)
	}
	if cfg.RuleEnabled("markdown_links") {
		findings = append(findings, v.checkMarkdownLinks(nb, cfg)...)
	}
	if cfg.RuleEnabled("documentation") {
		findings = append(findings, v.checkDocumentation(nb, cfg)...)
	}

	contentLog.Printf("Content validation complete: path=%s, findings=%d", nb.Path, len(findings))
	return findings
}

func (v *ContentValidator) severity(cfg CategoryConfig, rule string) Severity {
	return cfg.RuleSeverity(rule, contentBaselines[rule])
}

// checkHardcodedValues matches the configured (or default) pattern list
// against each code cell. Matches whose captured value starts with a
// placeholder prefix are not findings. A configured pattern that fails to
// compile panics, which the orchestrator surfaces as a category failure.
func (v *ContentValidator) checkHardcodedValues(nb *notebook.Notebook, cfg CategoryConfig) []Finding {
	severity := v.severity(cfg, "hardcoded_values")
	patterns := defaultHardcodedValuePatterns

	if configured := cfg.Rule("hardcoded_values").Patterns; len(configured) > 0 {
		patterns = make([]hardcodedValuePattern, 0, len(configured))
		for _, p := range configured {
			patterns = append(patterns, hardcodedValuePattern{
				Pattern:    regexp.MustCompile(p.Pattern),
				Message:    p.Message,
				Suggestion: p.Suggestion,
			})
		}
	}

	var findings []Finding
	for i := range nb.Cells {
		if !nb.Cells[i].IsCode() {
			continue
		}
		source := string(nb.Cells[i].Source)

		for _, entry := range patterns {
			for _, match := range entry.Pattern.FindAllStringSubmatchIndex(source, -1) {
				if len(match) >= 4 && match[2] >= 0 {
					value := source[match[2]:match[3]]
					if hasPlaceholderPrefix(value, entry.PlaceholderPrefixes) {
						continue
					}
				}
				findings = append(findings, lineFinding(
					"content.hardcoded_values",
					severity,
					entry.Message,
					i,
					lineNumberAt(source, match[0]),
					entry.Suggestion,
				))
			}
		}
	}

	return findings
}

func hasPlaceholderPrefix(value string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// checkOutputCells flags code cells whose accumulated output payload exceeds
// the configured size threshold.
func (v *ContentValidator) checkOutputCells(nb *notebook.Notebook, cfg CategoryConfig) []Finding {
	severity := v.severity(cfg, "output_cells")
	maxSize := defaultMaxOutputSize
	if configured := cfg.Rule("output_cells").MaxOutputSize; configured != nil {
		maxSize = *configured
	}

	var findings []Finding
	for i := range nb.Cells {
		if !nb.Cells[i].IsCode() || len(nb.Cells[i].Outputs) == 0 {
			continue
		}

		totalSize := 0
		for _, output := range nb.Cells[i].Outputs {
			for _, value := range output.Data {
				switch val := value.(type) {
				case string:
					totalSize += len(val)
				case []any:
					for _, e := range val {
						totalSize += len(fmt.Sprint(e))
					}
				}
			}
		}

		if totalSize > maxSize {
			findings = append(findings, cellFinding(
				"content.output_cells",
				severity,
				fmt.Sprintf("Large output (%d bytes) at cell %d. Consider clearing outputs", totalSize, i),
				i,
				"Clear outputs before committing: Cell -> All Output -> Clear",
			))
		}
	}

	return findings
}

// checkMarkdownLinks extracts [text](url) pairs and flags absolute http URLs
// containing a literal space. Anchor links and relative paths are skipped.
func (v *ContentValidator) checkMarkdownLinks(nb *notebook.Notebook, cfg CategoryConfig) []Finding {
	severity := v.severity(cfg, "markdown_links")
	var findings []Finding

	for i := range nb.Cells {
		if !nb.Cells[i].IsMarkdown() {
			continue
		}

		for _, match := range markdownLinkPattern.FindAllStringSubmatch(string(nb.Cells[i].Source), -1) {
			url := match[2]
			if strings.HasPrefix(url, "#") || !strings.HasPrefix(url, "http") {
				continue
			}
			if strings.Contains(url, " ") {
				findings = append(findings, cellFinding(
					"content.markdown_links",
					severity,
					fmt.Sprintf("Link contains spaces: %s", url),
					i,
					"Encode spaces as %20 or remove them",
				))
			}
		}
	}

	return findings
}

// checkDocumentation enforces a minimum markdown-to-code cell ratio and flags
// long runs of consecutive code cells. A run longer than the tolerated length
// yields one INFO finding per block, resetting the counter so a single long
// run is not reported per cell.
func (v *ContentValidator) checkDocumentation(nb *notebook.Notebook, cfg CategoryConfig) []Finding {
	if len(nb.Cells) == 0 {
		return nil
	}

	markdownCells := nb.MarkdownCellCount()
	codeCells := nb.CodeCellCount()
	if codeCells == 0 {
		return nil
	}

	minRatio := defaultMinMarkdownRatio
	if configured := cfg.Rule("documentation").MinMarkdownRatio; configured != nil {
		minRatio = *configured
	}

	var findings []Finding
	ratio := float64(markdownCells) / float64(markdownCells+codeCells)
	if ratio < minRatio {
		findings = append(findings, docFinding(
			"content.documentation",
			v.severity(cfg, "documentation"),
			fmt.Sprintf("Low documentation ratio: %.1f%% (minimum: %.1f%%)", ratio*100, minRatio*100),
			"Add more markdown cells to explain the code",
		))
	}

	lastWasMarkdown := true
	consecutiveCode := 0
	for i := range nb.Cells {
		switch {
		case nb.Cells[i].IsMarkdown():
			lastWasMarkdown = true
			consecutiveCode = 0
		case nb.Cells[i].IsCode():
			if lastWasMarkdown {
				consecutiveCode = 1
			} else {
				consecutiveCode++
			}
			lastWasMarkdown = false

			if consecutiveCode > maxConsecutiveCodeCells {
				findings = append(findings, cellFinding(
					"content.documentation",
					SeverityInfo,
					fmt.Sprintf("Many consecutive code cells without explanation (cell %d)", i),
					i,
					"Add markdown cells to explain what the code does",
				))
				consecutiveCode = 0
			}
		}
	}

	return findings
}
