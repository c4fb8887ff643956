package validator

// ExampleConfig returns the fully spelled-out configuration written by the
// init-config command. Unlike DefaultConfig it lists every rule with its
// baseline severity and documented parameters, so users have something
// concrete to edit.
func ExampleConfig() Config {
	enabled := true

	cfg := Config{
		Version:  "1.0",
		Settings: Settings{StrictMode: false},
		Structure: CategoryConfig{
			Enabled: &enabled,
			Rules: map[string]RuleConfig{
				"require_title":         {Enabled: boolPtr(true), Severity: "error"},
				"require_overview":      {Enabled: boolPtr(true), Severity: "warning"},
				"require_setup_section": {Enabled: boolPtr(true), Severity: "warning"},
				"check_cell_order":      {Enabled: boolPtr(true), Severity: "warning"},
				"check_section_headers": {Enabled: boolPtr(true), Severity: "info"},
			},
		},
		Content: CategoryConfig{
			Enabled: &enabled,
			Rules: map[string]RuleConfig{
				"hardcoded_values": {Enabled: boolPtr(true), Severity: "error"},
				"output_cells": {
					Enabled:       boolPtr(true),
					Severity:      "warning",
					MaxOutputSize: intPtr(defaultMaxOutputSize),
				},
				"markdown_links": {Enabled: boolPtr(true), Severity: "warning"},
				"documentation": {
					Enabled:          boolPtr(true),
					Severity:         "info",
					MinMarkdownRatio: floatPtr(defaultMinMarkdownRatio),
				},
			},
		},
		Metadata: CategoryConfig{
			Enabled: &enabled,
			Rules: map[string]RuleConfig{
				"required_fields": {
					Enabled:  boolPtr(true),
					Severity: "error",
					Fields:   []string{"title", "description", "tags"},
				},
				"colab_links": {
					Enabled:            boolPtr(true),
					Severity:           "warning",
					RequireForOfficial: boolPtr(true),
				},
				"license_info": {Enabled: boolPtr(true), Severity: "warning"},
			},
		},
		Dependencies: CategoryConfig{
			Enabled: &enabled,
			Rules: map[string]RuleConfig{
				"version_pinning": {
					Enabled:       boolPtr(true),
					Severity:      "warning",
					AllowUnpinned: []string{"google-cloud-aiplatform"},
				},
				"deprecated_apis":     {Enabled: boolPtr(true), Severity: "error"},
				"import_availability": {Enabled: boolPtr(true), Severity: "error"},
			},
		},
	}

	cfg.resolveSeverities()
	return cfg
}

func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }
