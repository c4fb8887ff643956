package validator

import (
	"strings"

	"github.com/vertex-tools/nbcheck/pkg/constants"
	"github.com/vertex-tools/nbcheck/pkg/logger"
	"github.com/vertex-tools/nbcheck/pkg/notebook"
	"github.com/vertex-tools/nbcheck/pkg/sliceutil"
)

var metadataLog = logger.New("validator:metadata")

// defaultRequiredFields are checked by required_fields when the rule carries
// no explicit field list.
var defaultRequiredFields = []string{"title", "description"}

// MetadataValidator checks notebook metadata completeness: required fields,
// hosted-notebook links and license information.
type MetadataValidator struct{}

// Name implements CategoryValidator.
func (v *MetadataValidator) Name() string { return CategoryMetadata }

var metadataBaselines = map[string]Severity{
	"required_fields": SeverityError,
	"colab_links":     SeverityWarning,
	"license_info":    SeverityWarning,
}

// Validate implements CategoryValidator.
func (v *MetadataValidator) Validate(nb *notebook.Notebook, cfg CategoryConfig) []Finding {
	var findings []Finding

	if cfg.RuleEnabled("required_fields") {
		findings = append(findings, v.checkRequiredFields(nb, cfg)...)
	}
	if cfg.RuleEnabled("colab_links") {
		findings = append(findings, v.checkColabLinks(nb, cfg)...)
	}
	if cfg.RuleEnabled("license_info") {
		findings = append(findings, v.checkLicenseInfo(nb, cfg)...)
	}

	metadataLog.Printf("Metadata validation complete: path=%s, findings=%d", nb.Path, len(findings))
	return findings
}

func (v *MetadataValidator) severity(cfg CategoryConfig, rule string) Severity {
	return cfg.RuleSeverity(rule, metadataBaselines[rule])
}

// checkRequiredFields verifies each configured field with its own presence
// heuristic. Author is only mandatory for notebooks on an official path.
func (v *MetadataValidator) checkRequiredFields(nb *notebook.Notebook, cfg CategoryConfig) []Finding {
	severity := v.severity(cfg, "required_fields")
	fields := defaultRequiredFields
	if configured := cfg.Rule("required_fields").Fields; len(configured) > 0 {
		fields = configured
	}

	var findings []Finding

	if sliceutil.Contains(fields, "title") && !hasTitle(nb) {
		findings = append(findings, docFinding(
			"metadata.required_fields",
			severity,
			"Missing required field: title",
			"Add a title as the first H1 heading",
		))
	}

	if sliceutil.Contains(fields, "description") && !hasDescription(nb) {
		findings = append(findings, docFinding(
			"metadata.required_fields",
			severity,
			"Missing required field: description",
			"Add a description explaining what the notebook does",
		))
	}

	if sliceutil.Contains(fields, "author") {
		if _, ok := nb.MetaString("author"); !ok && isOfficialPath(nb.Path) {
			findings = append(findings, docFinding(
				"metadata.required_fields",
				severity,
				"Missing required field: author (required for official notebooks)",
				"Add author information to notebook metadata",
			))
		}
	}

	if sliceutil.Contains(fields, "tags") {
		if tags, ok := nb.MetaStringSlice("tags"); !ok || len(tags) == 0 {
			findings = append(findings, docFinding(
				"metadata.required_fields",
				severity,
				"Missing required field: tags",
				"Add tags to help categorize the notebook",
			))
		}
	}

	return findings
}

// hasTitle checks explicit metadata or a leading H1 in the first 5 cells.
func hasTitle(nb *notebook.Notebook) bool {
	if _, ok := nb.MetaString("title"); ok {
		return true
	}
	for i := range nb.Cells {
		if i >= 5 {
			break
		}
		if nb.Cells[i].IsMarkdown() && strings.HasPrefix(strings.TrimSpace(string(nb.Cells[i].Source)), "# ") {
			return true
		}
	}
	return false
}

// hasDescription checks explicit metadata or a substantial markdown cell
// (more than 50 characters) within the first 10 cells.
func hasDescription(nb *notebook.Notebook) bool {
	if _, ok := nb.MetaString("description"); ok {
		return true
	}
	for i := range nb.Cells {
		if i >= 10 {
			break
		}
		if nb.Cells[i].IsMarkdown() && len(strings.TrimSpace(string(nb.Cells[i].Source))) > 50 {
			return true
		}
	}
	return false
}

// checkColabLinks verifies a Colab or Workbench link appears in the first 10
// cells. By default only official notebooks are held to this.
func (v *MetadataValidator) checkColabLinks(nb *notebook.Notebook, cfg CategoryConfig) []Finding {
	requireForOfficial := true
	if configured := cfg.Rule("colab_links").RequireForOfficial; configured != nil {
		requireForOfficial = *configured
	}

	if requireForOfficial && !isOfficialPath(nb.Path) {
		return nil
	}

	hasColab := false
	hasWorkbench := false
	for i := range nb.Cells {
		if i >= 10 {
			break
		}
		if !nb.Cells[i].IsMarkdown() {
			continue
		}
		source := string(nb.Cells[i].Source)
		if strings.Contains(source, "colab.research.google.com") {
			hasColab = true
		}
		if strings.Contains(source, "console.cloud.google.com/vertex-ai/workbench") {
			hasWorkbench = true
		}
	}

	if hasColab || hasWorkbench {
		return nil
	}

	return []Finding{docFinding(
		"metadata.colab_links",
		v.severity(cfg, "colab_links"),
		"Missing Colab or Workbench links",
		"Add links to open the notebook in Colab or Workbench",
	)}
}

// checkLicenseInfo requires a license keyword in the first 10 cells' markdown.
func (v *MetadataValidator) checkLicenseInfo(nb *notebook.Notebook, cfg CategoryConfig) []Finding {
	if markdownContainsKeyword(nb, licenseKeywords, 10) {
		return nil
	}
	return []Finding{docFinding(
		"metadata.license_info",
		v.severity(cfg, "license_info"),
		"No license information found",
		"Add license information (e.g., Apache 2.0) to the notebook",
	)}
}

// isOfficialPath reports whether the notebook path carries the official
// collection marker segment.
func isOfficialPath(path string) bool {
	return strings.Contains(path, constants.OfficialPathMarker)
}
