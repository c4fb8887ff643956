package validator

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/vertex-tools/nbcheck/pkg/fileutil"
	"github.com/vertex-tools/nbcheck/pkg/logger"
)

var configLog = logger.New("validator:config")

//go:embed config_schema.json
var configSchemaJSON []byte

// Config is the resolved validation configuration. It is loaded once, treated
// as immutable for a run, and passed by value into every rule category.
type Config struct {
	Version      string         `yaml:"version,omitempty" json:"version,omitempty"`
	Settings     Settings       `yaml:"settings,omitempty" json:"settings,omitempty"`
	Structure    CategoryConfig `yaml:"structure" json:"structure"`
	Content      CategoryConfig `yaml:"content" json:"content"`
	Metadata     CategoryConfig `yaml:"metadata" json:"metadata"`
	Dependencies CategoryConfig `yaml:"dependencies" json:"dependencies"`
}

// Settings holds tool-level options outside any rule category.
type Settings struct {
	StrictMode bool `yaml:"strict_mode" json:"strict_mode"`
}

// CategoryConfig controls one rule category. An absent category (nil Enabled)
// is enabled by default.
type CategoryConfig struct {
	Enabled *bool                 `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Rules   map[string]RuleConfig `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// RuleConfig controls a single rule. Absent fields take per-rule defaults.
type RuleConfig struct {
	Enabled  *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Severity string `yaml:"severity,omitempty" json:"severity,omitempty"`

	// Category-specific parameters.
	Patterns           []PatternConfig    `yaml:"patterns,omitempty" json:"patterns,omitempty"`
	Fields             []string           `yaml:"fields,omitempty" json:"fields,omitempty"`
	AllowUnpinned      []string           `yaml:"allow_unpinned,omitempty" json:"allow_unpinned,omitempty"`
	DeprecatedImports  []DeprecatedEntry  `yaml:"deprecated_imports,omitempty" json:"deprecated_imports,omitempty"`
	MaxOutputSize      *int               `yaml:"max_output_size,omitempty" json:"max_output_size,omitempty"`
	MinMarkdownRatio   *float64           `yaml:"min_markdown_ratio,omitempty" json:"min_markdown_ratio,omitempty"`
	RequireForOfficial *bool              `yaml:"require_for_official,omitempty" json:"require_for_official,omitempty"`

	// severity is the parsed form of Severity, resolved once at load time.
	severity    Severity
	severitySet bool
}

// PatternConfig is a configurable detection pattern with its finding text.
type PatternConfig struct {
	Pattern    string `yaml:"pattern" json:"pattern"`
	Message    string `yaml:"message" json:"message"`
	Suggestion string `yaml:"suggestion,omitempty" json:"suggestion,omitempty"`
}

// DeprecatedEntry is a configured deprecated-identifier replacement.
type DeprecatedEntry struct {
	Old             string `yaml:"old" json:"old"`
	New             string `yaml:"new" json:"new"`
	DeprecatedSince string `yaml:"deprecated_since,omitempty" json:"deprecated_since,omitempty"`
}

// IsEnabled reports whether the category is enabled (default true).
func (c CategoryConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Rule returns the configuration for a named rule, zero-valued when absent.
func (c CategoryConfig) Rule(name string) RuleConfig {
	return c.Rules[name]
}

// RuleEnabled reports whether a rule is enabled (default true).
func (c CategoryConfig) RuleEnabled(name string) bool {
	rule, ok := c.Rules[name]
	if !ok || rule.Enabled == nil {
		return true
	}
	return *rule.Enabled
}

// RuleSeverity returns the configured severity for a rule, or the rule's
// baseline when no override is configured.
func (c CategoryConfig) RuleSeverity(name string, baseline Severity) Severity {
	rule, ok := c.Rules[name]
	if !ok || !rule.severitySet {
		return baseline
	}
	return rule.severity
}

// CategoryByName returns the configuration block for a category name.
func (c Config) CategoryByName(name string) CategoryConfig {
	switch name {
	case CategoryStructure:
		return c.Structure
	case CategoryContent:
		return c.Content
	case CategoryMetadata:
		return c.Metadata
	case CategoryDependencies:
		return c.Dependencies
	default:
		return CategoryConfig{}
	}
}

// DefaultConfig returns the built-in configuration: all categories enabled,
// no rule overrides.
func DefaultConfig() Config {
	enabled := true
	return Config{
		Structure:    CategoryConfig{Enabled: &enabled},
		Content:      CategoryConfig{Enabled: &enabled},
		Metadata:     CategoryConfig{Enabled: &enabled},
		Dependencies: CategoryConfig{Enabled: &enabled},
	}
}

// LoadConfig loads a validation configuration from a YAML file. An empty or
// missing path falls back silently to DefaultConfig so the tool runs without
// any setup. A path that exists but does not parse or does not satisfy the
// configuration schema is a fatal error.
func LoadConfig(path string) (Config, error) {
	if path == "" || !fileutil.FileExists(path) {
		if path != "" {
			configLog.Printf("Config path not found, using defaults: path=%s", path)
		}
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := validateConfigSchema(data); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.resolveSeverities()
	configLog.Printf("Loaded config: path=%s", path)
	return cfg, nil
}

// validateConfigSchema checks raw YAML config content against the embedded
// JSON schema before decoding into typed structs.
func validateConfigSchema(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("malformed YAML: %w", err)
	}

	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(configSchemaJSON))
	if err != nil {
		return fmt.Errorf("failed to load config schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("nbcheck-config.schema.json", schemaDoc); err != nil {
		return fmt.Errorf("failed to register config schema: %w", err)
	}
	schema, err := compiler.Compile("nbcheck-config.schema.json")
	if err != nil {
		return fmt.Errorf("failed to compile config schema: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// resolveSeverities parses every configured severity string into the Severity
// enum. Unrecognized strings fall back to WARNING here, so severity parsing
// never happens per finding.
func (c *Config) resolveSeverities() {
	for _, cat := range []*CategoryConfig{&c.Structure, &c.Content, &c.Metadata, &c.Dependencies} {
		for name, rule := range cat.Rules {
			if rule.Severity != "" {
				rule.severity = ParseSeverity(rule.Severity)
				rule.severitySet = true
				cat.Rules[name] = rule
			}
		}
	}
}
