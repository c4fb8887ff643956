package validator

import (
	"encoding/json"
	"time"
)

// Severity classifies a finding. The ordering is significant: ERROR outranks
// WARNING, which outranks INFO, and only ERROR findings make a notebook
// invalid.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the lowercase wire form of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// MarshalJSON emits the severity as its string form.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses the string form, falling back to WARNING for
// unrecognized values.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseSeverity(raw)
	return nil
}

// ParseSeverity converts a severity string to a Severity. Unrecognized values
// fall back to WARNING; the fallback is resolved once at configuration load,
// never per finding.
func ParseSeverity(s string) Severity {
	switch s {
	case "error":
		return SeverityError
	case "info":
		return SeverityInfo
	default:
		return SeverityWarning
	}
}

// Difficulty is the estimated skill level required by a notebook.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Finding is a single validation outcome. Findings are immutable values and
// their insertion order within a report is preserved.
type Finding struct {
	RuleID     string   `json:"rule_id"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	CellIndex  *int     `json:"cell_index"`
	LineNumber *int     `json:"line_number"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Dependency is a declared package dependency parsed from an installation
// directive.
type Dependency struct {
	Name       string `json:"name" yaml:"name"`
	Version    string `json:"version,omitempty" yaml:"version,omitempty"`
	IsPinned   bool   `json:"is_pinned" yaml:"is_pinned"`
	Constraint string `json:"constraint,omitempty" yaml:"constraint,omitempty"`
}

// Metadata is the structured record derived from a notebook by the extractor.
// Absent optional fields are nil pointers or empty collections.
type Metadata struct {
	Title            string       `json:"title" yaml:"title"`
	Description      string       `json:"description" yaml:"description"`
	Author           *string      `json:"author" yaml:"author"`
	CreatedDate      *string      `json:"created_date" yaml:"created_date"`
	ModifiedDate     *string      `json:"modified_date" yaml:"modified_date"`
	Tags             []string     `json:"tags" yaml:"tags"`
	Services         []string     `json:"vertex_ai_services" yaml:"vertex_ai_services"`
	PythonVersion    *string      `json:"python_version" yaml:"python_version"`
	Dependencies     []Dependency `json:"dependencies" yaml:"dependencies"`
	EstimatedRuntime *string      `json:"estimated_runtime" yaml:"estimated_runtime"`
	Difficulty       *Difficulty  `json:"difficulty_level" yaml:"difficulty_level"`
	ColabLink        *string      `json:"colab_link" yaml:"colab_link"`
	WorkbenchLink    *string      `json:"workbench_link" yaml:"workbench_link"`
}

// Report is the terminal, immutable artifact of one validation run.
type Report struct {
	NotebookPath  string    `json:"notebook_path"`
	IsValid       bool      `json:"is_valid"`
	Findings      []Finding `json:"findings"`
	Metadata      *Metadata `json:"metadata"`
	ExecutionTime float64   `json:"execution_time"`
	Timestamp     time.Time `json:"timestamp"`
}

// ErrorCount returns the number of ERROR findings. Counts are always computed
// from the findings list, never stored alongside it.
func (r *Report) ErrorCount() int { return r.countSeverity(SeverityError) }

// WarningCount returns the number of WARNING findings.
func (r *Report) WarningCount() int { return r.countSeverity(SeverityWarning) }

// InfoCount returns the number of INFO findings.
func (r *Report) InfoCount() int { return r.countSeverity(SeverityInfo) }

func (r *Report) countSeverity(s Severity) int {
	count := 0
	for i := range r.Findings {
		if r.Findings[i].Severity == s {
			count++
		}
	}
	return count
}

// intPtr and strPtr keep finding and metadata construction readable.
func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func cellFinding(ruleID string, severity Severity, message string, cellIndex int, suggestion string) Finding {
	return Finding{
		RuleID:     ruleID,
		Severity:   severity,
		Message:    message,
		CellIndex:  intPtr(cellIndex),
		Suggestion: suggestion,
	}
}

func lineFinding(ruleID string, severity Severity, message string, cellIndex, lineNumber int, suggestion string) Finding {
	f := cellFinding(ruleID, severity, message, cellIndex, suggestion)
	f.LineNumber = intPtr(lineNumber)
	return f
}

func docFinding(ruleID string, severity Severity, message, suggestion string) Finding {
	return Finding{
		RuleID:     ruleID,
		Severity:   severity,
		Message:    message,
		Suggestion: suggestion,
	}
}

// lineNumberAt returns the 1-indexed line number of byte offset pos in text.
func lineNumberAt(text string, pos int) int {
	if pos > len(text) {
		pos = len(text)
	}
	line := 1
	for i := 0; i < pos; i++ {
		if text[i] == '\n' {
			line++
		}
	}
	return line
}
