package validator

import (
	"fmt"
	"strings"

	"github.com/vertex-tools/nbcheck/pkg/logger"
	"github.com/vertex-tools/nbcheck/pkg/notebook"
)

var structureLog = logger.New("validator:structure")

// StructureValidator checks notebook structure and organization: title,
// overview and setup sections, import ordering and heading hierarchy.
type StructureValidator struct{}

// Name implements CategoryValidator.
func (v *StructureValidator) Name() string { return CategoryStructure }

// Baseline severities per rule, overridable from configuration.
var structureBaselines = map[string]Severity{
	"require_title":         SeverityError,
	"require_overview":      SeverityWarning,
	"require_setup_section": SeverityWarning,
	"check_cell_order":      SeverityWarning,
	"check_section_headers": SeverityInfo,
}

// Validate implements CategoryValidator.
func (v *StructureValidator) Validate(nb *notebook.Notebook, cfg CategoryConfig) []Finding {
	var findings []Finding

	if cfg.RuleEnabled("require_title") {
		findings = append(findings, v.checkTitle(nb, cfg)...)
	}
	if cfg.RuleEnabled("require_overview") {
		findings = append(findings, v.checkOverview(nb, cfg)...)
	}
	if cfg.RuleEnabled("require_setup_section") {
		findings = append(findings, v.checkSetupSection(nb, cfg)...)
	}
	if cfg.RuleEnabled("check_cell_order") {
		findings = append(findings, v.checkCellOrder(nb, cfg)...)
	}
	if cfg.RuleEnabled("check_section_headers") {
		findings = append(findings, v.checkSectionHeaders(nb, cfg)...)
	}

	structureLog.Printf("Structure validation complete: path=%s, findings=%d", nb.Path, len(findings))
	return findings
}

func (v *StructureValidator) severity(cfg CategoryConfig, rule string) Severity {
	return cfg.RuleSeverity(rule, structureBaselines[rule])
}

// checkTitle requires a level-1 heading or explicit title metadata within the
// first 5 cells.
func (v *StructureValidator) checkTitle(nb *notebook.Notebook, cfg CategoryConfig) []Finding {
	severity := v.severity(cfg, "require_title")

	if len(nb.Cells) == 0 {
		return []Finding{docFinding("structure.require_title", severity, "Notebook has no cells", "")}
	}

	if _, ok := nb.MetaString("title"); ok {
		return nil
	}

	for i := range nb.Cells {
		if i >= 5 {
			break
		}
		if nb.Cells[i].IsMarkdown() && h1Pattern.MatchString(string(nb.Cells[i].Source)) {
			return nil
		}
	}

	return []Finding{docFinding(
		"structure.require_title",
		severity,
		"Notebook should have a title (# heading) in the first markdown cell",
		"Add a title using: # Your Notebook Title",
	)}
}

// checkOverview requires an overview/objectives section within the first 10
// cells.
func (v *StructureValidator) checkOverview(nb *notebook.Notebook, cfg CategoryConfig) []Finding {
	if markdownContainsKeyword(nb, overviewKeywords, 10) {
		return nil
	}
	return []Finding{docFinding(
		"structure.require_overview",
		v.severity(cfg, "require_overview"),
		"Notebook should have an overview or objectives section",
		"Add a section describing what the notebook covers",
	)}
}

// checkSetupSection requires setup/installation instructions within the first
// 15 cells.
func (v *StructureValidator) checkSetupSection(nb *notebook.Notebook, cfg CategoryConfig) []Finding {
	if markdownContainsKeyword(nb, setupKeywords, 15) {
		return nil
	}
	return []Finding{docFinding(
		"structure.require_setup_section",
		v.severity(cfg, "require_setup_section"),
		"Notebook should have a setup/installation section",
		"Add a section explaining how to set up the environment",
	)}
}

// checkCellOrder flags import statements appearing after non-import code has
// already run, one finding per offending cell.
func (v *StructureValidator) checkCellOrder(nb *notebook.Notebook, cfg CategoryConfig) []Finding {
	severity := v.severity(cfg, "check_cell_order")
	var findings []Finding

	foundNonImportCode := false
	for i := range nb.Cells {
		if !nb.Cells[i].IsCode() {
			continue
		}
		source := string(nb.Cells[i].Source)

		hasImport := importPrefixPattern.MatchString(source)
		hasOtherCode := !hasImport && hasExecutableLine(source)

		if hasOtherCode {
			foundNonImportCode = true
		}

		if foundNonImportCode && hasImport {
			findings = append(findings, cellFinding(
				"structure.check_cell_order",
				severity,
				fmt.Sprintf("Import statement found after code execution at cell %d", i),
				i,
				"Move all imports to the beginning of the notebook",
			))
		}
	}

	return findings
}

// hasExecutableLine reports whether any line starts with something other than
// a comment marker or whitespace.
func hasExecutableLine(source string) bool {
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			return true
		}
	}
	return false
}

// checkSectionHeaders flags heading levels that skip a level (e.g. an h1
// followed directly by an h3). Level tracking carries across cell boundaries.
func (v *StructureValidator) checkSectionHeaders(nb *notebook.Notebook, cfg CategoryConfig) []Finding {
	severity := v.severity(cfg, "check_section_headers")
	var findings []Finding

	lastLevel := 0
	for i := range nb.Cells {
		if !nb.Cells[i].IsMarkdown() {
			continue
		}

		for _, match := range headingPattern.FindAllStringSubmatch(string(nb.Cells[i].Source), -1) {
			level := len(match[1])

			if lastLevel > 0 && level > lastLevel+1 {
				findings = append(findings, cellFinding(
					"structure.check_section_headers",
					severity,
					fmt.Sprintf("Skipped header level from h%d to h%d at cell %d", lastLevel, level, i),
					i,
					fmt.Sprintf("Use h%d instead of h%d", lastLevel+1, level),
				))
			}

			lastLevel = level
		}
	}

	return findings
}

// markdownContainsKeyword reports whether any of the keywords appears in the
// markdown text of the first maxCells cells, case-insensitively.
func markdownContainsKeyword(nb *notebook.Notebook, keywords []string, maxCells int) bool {
	for i := range nb.Cells {
		if i >= maxCells {
			break
		}
		if !nb.Cells[i].IsMarkdown() {
			continue
		}
		content := strings.ToLower(string(nb.Cells[i].Source))
		for _, keyword := range keywords {
			if strings.Contains(content, keyword) {
				return true
			}
		}
	}
	return false
}
