package validator

import (
	"fmt"
	"strings"

	"github.com/vertex-tools/nbcheck/pkg/logger"
	"github.com/vertex-tools/nbcheck/pkg/notebook"
	"github.com/vertex-tools/nbcheck/pkg/sliceutil"
)

var dependencyLog = logger.New("validator:dependencies")

// DependencyValidator checks dependency hygiene: version pinning, deprecated
// API usage and import/install consistency.
type DependencyValidator struct{}

// Name implements CategoryValidator.
func (v *DependencyValidator) Name() string { return CategoryDependencies }

var dependencyBaselines = map[string]Severity{
	"version_pinning":     SeverityWarning,
	"deprecated_apis":     SeverityError,
	"import_availability": SeverityError,
}

// Validate implements CategoryValidator.
func (v *DependencyValidator) Validate(nb *notebook.Notebook, cfg CategoryConfig) []Finding {
	var findings []Finding

	if cfg.RuleEnabled("version_pinning") {
		findings = append(findings, v.checkVersionPinning(nb, cfg)...)
	}
	if cfg.RuleEnabled("deprecated_apis") {
		findings = append(findings, v.checkDeprecatedAPIs(nb, cfg)...)
	}
	if cfg.RuleEnabled("import_availability") {
		findings = append(findings, v.checkImportAvailability(nb, cfg)...)
	}

	dependencyLog.Printf("Dependency validation complete: path=%s, findings=%d", nb.Path, len(findings))
	return findings
}

func (v *DependencyValidator) severity(cfg CategoryConfig, rule string) Severity {
	return cfg.RuleSeverity(rule, dependencyBaselines[rule])
}

// checkVersionPinning flags every installed package without a version
// specifier, unless the package is on the configured allow-list.
func (v *DependencyValidator) checkVersionPinning(nb *notebook.Notebook, cfg CategoryConfig) []Finding {
	severity := v.severity(cfg, "version_pinning")
	allowUnpinned := cfg.Rule("version_pinning").AllowUnpinned

	var findings []Finding
	for _, occ := range parseInstallDirectives(nb) {
		if occ.Dep.Constraint != "" {
			continue
		}
		if sliceutil.Contains(allowUnpinned, occ.Dep.Name) {
			continue
		}
		findings = append(findings, lineFinding(
			"dependencies.version_pinning",
			severity,
			fmt.Sprintf("Unpinned dependency: %s", occ.Dep.Name),
			occ.CellIndex,
			occ.LineNumber,
			fmt.Sprintf("Pin version: !pip install %s==x.y.z", occ.Dep.Name),
		))
	}

	return findings
}

// checkDeprecatedAPIs substring-matches code cells against the built-in
// deprecated-identifier table merged with configured additions. A configured
// entry for a known identifier overrides the built-in one.
func (v *DependencyValidator) checkDeprecatedAPIs(nb *notebook.Notebook, cfg CategoryConfig) []Finding {
	severity := v.severity(cfg, "deprecated_apis")
	deprecated := mergeDeprecated(cfg.Rule("deprecated_apis").DeprecatedImports)

	var findings []Finding
	for i := range nb.Cells {
		if !nb.Cells[i].IsCode() {
			continue
		}
		source := string(nb.Cells[i].Source)

		for _, entry := range deprecated {
			idx := strings.Index(source, entry.Old)
			if idx < 0 {
				continue
			}
			since := entry.DeprecatedSince
			if since == "" {
				since = "unknown"
			}
			findings = append(findings, lineFinding(
				"dependencies.deprecated_apis",
				severity,
				fmt.Sprintf("Deprecated API usage: %s", entry.Old),
				i,
				lineNumberAt(source, idx),
				fmt.Sprintf("Use %s instead (deprecated since %s)", entry.New, since),
			))
		}
	}

	return findings
}

// mergeDeprecated merges configured deprecations over the built-in table,
// preserving built-in order and appending new entries in configured order.
func mergeDeprecated(configured []DeprecatedEntry) []deprecatedAPI {
	merged := make([]deprecatedAPI, len(deprecatedAPITable))
	copy(merged, deprecatedAPITable)

	for _, entry := range configured {
		replaced := false
		for i := range merged {
			if merged[i].Old == entry.Old {
				merged[i] = deprecatedAPI{Old: entry.Old, New: entry.New, DeprecatedSince: entry.DeprecatedSince}
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, deprecatedAPI{Old: entry.Old, New: entry.New, DeprecatedSince: entry.DeprecatedSince})
		}
	}

	return merged
}

// checkImportAvailability verifies every top-level import is covered by an
// installation directive, after mapping known import-name aliases and
// excluding the Python standard library.
func (v *DependencyValidator) checkImportAvailability(nb *notebook.Notebook, cfg CategoryConfig) []Finding {
	severity := v.severity(cfg, "import_availability")

	installed := make(map[string]bool)
	for _, occ := range parseInstallDirectives(nb) {
		installed[strings.ToLower(occ.Dep.Name)] = true
	}

	var findings []Finding
	for i := range nb.Cells {
		if !nb.Cells[i].IsCode() {
			continue
		}
		source := string(nb.Cells[i].Source)

		for _, match := range importLinePattern.FindAllStringSubmatchIndex(source, -1) {
			module := source[match[2]:match[3]]
			if dot := strings.Index(module, "."); dot >= 0 {
				module = module[:dot]
			}

			if pythonStdlibModules[module] {
				continue
			}

			packageName := module
			if alias, ok := importPackageAliases[module]; ok {
				packageName = alias
			}

			if installed[strings.ToLower(packageName)] {
				continue
			}

			findings = append(findings, lineFinding(
				"dependencies.import_availability",
				severity,
				fmt.Sprintf("Import '%s' not found in pip install commands", module),
				i,
				lineNumberAt(source, match[0]),
				fmt.Sprintf("Add: !pip install %s", packageName),
			))
		}
	}

	return findings
}
