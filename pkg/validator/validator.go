// Package validator implements the notebook validation engine: metadata
// extraction, the four rule categories, and the orchestrator that composes
// them under configuration into immutable reports.
package validator

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/vertex-tools/nbcheck/pkg/constants"
	"github.com/vertex-tools/nbcheck/pkg/logger"
	"github.com/vertex-tools/nbcheck/pkg/notebook"
)

var validatorLog = logger.New("validator:validator")

// Validator orchestrates validation runs. It holds the immutable resolved
// configuration and the registry of rule categories, and is safe for
// concurrent use once constructed.
type Validator struct {
	config     Config
	categories map[string]CategoryValidator
	order      []string
}

// New creates a Validator with the configuration at configPath. An empty or
// missing path silently selects the built-in default configuration; a
// malformed configuration file is a fatal error.
func New(configPath string) (*Validator, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg), nil
}

// NewWithConfig creates a Validator from an already resolved configuration.
func NewWithConfig(cfg Config) *Validator {
	v := &Validator{
		config:     cfg,
		categories: make(map[string]CategoryValidator),
	}
	for _, cat := range defaultCategories() {
		v.Register(cat)
	}
	return v
}

// Register adds a rule category to the registry. Built-in categories are
// registered by the constructor; callers can extend the validator with their
// own categories without modifying the orchestrator.
func (v *Validator) Register(cat CategoryValidator) {
	name := cat.Name()
	if _, exists := v.categories[name]; !exists {
		v.order = append(v.order, name)
	}
	v.categories[name] = cat
}

// Config returns the resolved configuration in use.
func (v *Validator) Config() Config {
	return v.config
}

// ValidateNotebook validates a single notebook file. If categories are given,
// only those run; unknown names are skipped with a debug log rather than
// failing. The returned report is the terminal artifact of the run: a parse
// failure yields a report with a single parse_error finding, and a category
// that panics contributes a single <category>_error finding without stopping
// the other categories.
func (v *Validator) ValidateNotebook(path string, categories ...string) *Report {
	start := time.Now()
	validatorLog.Printf("Validating notebook: path=%s, categories=%v", path, categories)

	nb, err := notebook.Read(path)
	if err != nil {
		return &Report{
			NotebookPath: path,
			IsValid:      false,
			Findings: []Finding{{
				RuleID:   "parse_error",
				Severity: SeverityError,
				Message:  fmt.Sprintf("Failed to parse notebook: %v", err),
			}},
			ExecutionTime: time.Since(start).Seconds(),
			Timestamp:     time.Now().UTC(),
		}
	}

	metadata := extractWithRecovery(nb)

	var findings []Finding
	for _, name := range v.selectCategories(categories) {
		cat := v.categories[name]
		cfg := v.config.CategoryByName(name)
		if !cfg.IsEnabled() {
			continue
		}
		findings = append(findings, runCategory(cat, nb, cfg)...)
	}

	return &Report{
		NotebookPath:  path,
		IsValid:       !hasError(findings),
		Findings:      findings,
		Metadata:      metadata,
		ExecutionTime: time.Since(start).Seconds(),
		Timestamp:     time.Now().UTC(),
	}
}

// selectCategories returns the categories to run in registry order. An
// explicit request keeps only known names.
func (v *Validator) selectCategories(requested []string) []string {
	if len(requested) == 0 {
		return v.order
	}

	keep := make(map[string]bool, len(requested))
	for _, name := range requested {
		if _, known := v.categories[name]; known {
			keep[name] = true
		} else {
			validatorLog.Printf("Ignoring unknown category: name=%s", name)
		}
	}

	var selected []string
	for _, name := range v.order {
		if keep[name] {
			selected = append(selected, name)
		}
	}
	return selected
}

// runCategory executes one category with panic isolation: a panicking
// category is converted to a single ERROR finding so the remaining categories
// still run.
func runCategory(cat CategoryValidator, nb *notebook.Notebook, cfg CategoryConfig) (findings []Finding) {
	defer func() {
		if r := recover(); r != nil {
			validatorLog.Printf("Category panicked: name=%s, panic=%v", cat.Name(), r)
			findings = []Finding{{
				RuleID:   cat.Name() + "_error",
				Severity: SeverityError,
				Message:  fmt.Sprintf("Validator %s failed: %v", cat.Name(), r),
			}}
		}
	}()
	return cat.Validate(nb, cfg)
}

// extractWithRecovery runs metadata extraction with the same isolation.
// Extraction failure is non-fatal: the run continues with nil metadata.
func extractWithRecovery(nb *notebook.Notebook) (meta *Metadata) {
	defer func() {
		if r := recover(); r != nil {
			validatorLog.Printf("Metadata extraction panicked: path=%s, panic=%v", nb.Path, r)
			meta = nil
		}
	}()
	return ExtractMetadata(nb)
}

func hasError(findings []Finding) bool {
	for i := range findings {
		if findings[i].Severity == SeverityError {
			return true
		}
	}
	return false
}

// DirectoryOptions controls a directory validation run.
type DirectoryOptions struct {
	// Recursive walks subdirectories. Default pattern matching applies to
	// file names at any depth.
	Recursive bool

	// Pattern is the glob pattern for notebook file names. Empty means the
	// default *.ipynb.
	Pattern string

	// MaxWorkers bounds the worker pool. Values below 1 select the default.
	MaxWorkers int

	// FailFast stops after the first invalid report. Implies a sequential
	// run so "first" is well defined.
	FailFast bool

	// Categories restricts which rule categories run, as in ValidateNotebook.
	Categories []string
}

// ValidateDirectory validates every notebook under dir matching the pattern.
// Checkpoint artifacts are skipped, and a per-file parse failure produces an
// invalid report for that file without aborting the run. Files are validated
// by a bounded worker pool; results are returned in enumeration order so runs
// are deterministic.
func (v *Validator) ValidateDirectory(dir string, opts DirectoryOptions) ([]*Report, error) {
	pattern := opts.Pattern
	if pattern == "" {
		pattern = constants.DefaultNotebookPattern
	}

	paths, err := v.enumerateNotebooks(dir, pattern, opts.Recursive)
	if err != nil {
		return nil, err
	}
	validatorLog.Printf("Directory enumeration complete: dir=%s, files=%d", dir, len(paths))

	if opts.FailFast {
		var reports []*Report
		for _, path := range paths {
			report := v.ValidateNotebook(path, opts.Categories...)
			reports = append(reports, report)
			if !report.IsValid {
				break
			}
		}
		return reports, nil
	}

	workers := opts.MaxWorkers
	if workers < 1 {
		workers = constants.DefaultMaxWorkers
	}

	reports := make([]*Report, len(paths))
	p := pool.New().WithMaxGoroutines(workers)
	for i, path := range paths {
		i, path := i, path
		p.Go(func() {
			reports[i] = v.ValidateNotebook(path, opts.Categories...)
		})
	}
	p.Wait()

	return reports, nil
}

// enumerateNotebooks lists matching notebook files in deterministic order,
// skipping checkpoint directories.
func (v *Validator) enumerateNotebooks(dir, pattern string, recursive bool) ([]string, error) {
	var paths []string

	if recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			matched, matchErr := filepath.Match(pattern, d.Name())
			if matchErr != nil {
				return fmt.Errorf("invalid pattern %q: %w", pattern, matchErr)
			}
			if matched && !strings.Contains(path, constants.CheckpointDirMarker) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory %s: %w", dir, err)
		}
		return paths, nil
	}

	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", dir, err)
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	for _, path := range matches {
		if !strings.Contains(path, constants.CheckpointDirMarker) {
			paths = append(paths, path)
		}
	}
	return paths, nil
}
