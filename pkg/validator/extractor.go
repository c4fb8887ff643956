package validator

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/vertex-tools/nbcheck/pkg/logger"
	"github.com/vertex-tools/nbcheck/pkg/notebook"
	"github.com/vertex-tools/nbcheck/pkg/sliceutil"
)

var extractLog = logger.New("validator:extractor")

// ExtractMetadata derives a structured Metadata record from a notebook using
// prioritized heuristics: an explicit notebook-metadata field always wins
// over content inference. The function is total — extraction problems degrade
// to absent fields, never to an error.
func ExtractMetadata(nb *notebook.Notebook) *Metadata {
	extractLog.Printf("Extracting metadata: path=%s, cells=%d", nb.Path, len(nb.Cells))

	deps := dedupeDependencies(parseInstallDirectives(nb))

	meta := &Metadata{
		Title:            extractTitle(nb),
		Description:      extractDescription(nb),
		Author:           extractAuthor(nb),
		Tags:             extractTags(nb),
		Services:         extractServices(nb),
		PythonVersion:    extractPythonVersion(nb),
		Dependencies:     deps,
		EstimatedRuntime: estimateRuntime(nb),
		Difficulty:       estimateDifficulty(nb, len(deps)),
		ColabLink:        matchLink(nb, colabLinkPattern),
		WorkbenchLink:    matchLink(nb, workbenchLinkPattern),
	}

	if nb.Path != "" {
		if info, err := os.Stat(nb.Path); err == nil {
			meta.ModifiedDate = strPtr(info.ModTime().Format(time.RFC3339))
		}
	}

	return meta
}

// extractTitle prefers explicit metadata, then the first level-1 heading,
// then a fixed fallback.
func extractTitle(nb *notebook.Notebook) string {
	if title, ok := nb.MetaString("title"); ok {
		return title
	}

	for i := range nb.Cells {
		if !nb.Cells[i].IsMarkdown() {
			continue
		}
		for _, line := range strings.Split(string(nb.Cells[i].Source), "\n") {
			if strings.HasPrefix(line, "# ") {
				return strings.TrimSpace(line[2:])
			}
		}
	}

	return "Untitled Notebook"
}

// extractDescription prefers explicit metadata, then the first non-heading,
// non-empty markdown line following the detected title.
func extractDescription(nb *notebook.Notebook) string {
	if desc, ok := nb.MetaString("description"); ok {
		return desc
	}

	foundTitle := false
	for i := range nb.Cells {
		if !nb.Cells[i].IsMarkdown() {
			continue
		}
		for _, line := range strings.Split(string(nb.Cells[i].Source), "\n") {
			if strings.HasPrefix(line, "# ") {
				foundTitle = true
				continue
			}
			if foundTitle && strings.TrimSpace(line) != "" && !strings.HasPrefix(line, "#") {
				return strings.TrimSpace(line)
			}
		}
	}

	return ""
}

// extractAuthor prefers explicit metadata, then an "Author:" or "By:" line in
// the first 5 cells.
func extractAuthor(nb *notebook.Notebook) *string {
	if author, ok := nb.MetaString("author"); ok {
		return strPtr(author)
	}

	for i := range nb.Cells {
		if i >= 5 {
			break
		}
		if !nb.Cells[i].IsMarkdown() {
			continue
		}
		if m := authorPattern.FindStringSubmatch(string(nb.Cells[i].Source)); m != nil {
			return strPtr(strings.TrimSpace(m[1]))
		}
	}

	return nil
}

// extractTags unions explicit metadata tags with tags inferred from the
// keyword table, deduplicated by first occurrence.
func extractTags(nb *notebook.Notebook) []string {
	var tags []string
	if explicit, ok := nb.MetaStringSlice("tags"); ok {
		tags = append(tags, explicit...)
	}

	content := strings.ToLower(nb.AllText())
	for _, entry := range tagKeywordTable {
		for _, keyword := range entry.Keywords {
			if strings.Contains(content, keyword) {
				tags = append(tags, entry.Tag)
				break
			}
		}
	}

	return sliceutil.Unique(tags)
}

// extractServices detects which services from the catalog are used, each one
// independently of the others.
func extractServices(nb *notebook.Notebook) []string {
	code := nb.CodeText()

	var services []string
	for _, entry := range serviceCatalog {
		for _, pattern := range entry.Patterns {
			if pattern.MatchString(code) {
				services = append(services, entry.Service)
				break
			}
		}
	}

	return services
}

// installOccurrence is one package token from an installation directive,
// located for rule findings.
type installOccurrence struct {
	Dep        Dependency
	CellIndex  int
	LineNumber int
}

// parseInstallDirectives scans code cells for pip install commands and parses
// each package token. Flag-like and URL-like tokens are skipped; specifier
// operators are tried in priority order and only == pins a version; a
// trailing extras bracket is stripped from the name.
func parseInstallDirectives(nb *notebook.Notebook) []installOccurrence {
	var occurrences []installOccurrence

	for i := range nb.Cells {
		if !nb.Cells[i].IsCode() {
			continue
		}
		source := string(nb.Cells[i].Source)

		for _, match := range pipInstallPattern.FindAllStringSubmatchIndex(source, -1) {
			line := lineNumberAt(source, match[0])
			args := source[match[2]:match[3]]

			for _, token := range strings.Fields(args) {
				if strings.HasPrefix(token, "-") || strings.Contains(token, "://") {
					continue
				}
				dep, ok := parsePackageToken(token)
				if !ok {
					continue
				}
				occurrences = append(occurrences, installOccurrence{Dep: dep, CellIndex: i, LineNumber: line})
			}
		}
	}

	return occurrences
}

// parsePackageToken splits one package token into name, operator and version.
func parsePackageToken(token string) (Dependency, bool) {
	name := token
	var version, constraint string
	pinned := false

	for _, op := range versionOperators {
		if idx := strings.Index(token, op); idx >= 0 {
			name = token[:idx]
			version = token[idx+len(op):]
			constraint = op
			pinned = op == "=="
			break
		}
	}

	name = extrasBracketPattern.ReplaceAllString(name, "")
	if name == "" {
		return Dependency{}, false
	}

	return Dependency{Name: name, Version: version, IsPinned: pinned, Constraint: constraint}, true
}

// dedupeDependencies keeps the first occurrence of each package name.
func dedupeDependencies(occurrences []installOccurrence) []Dependency {
	seen := make(map[string]bool)
	var deps []Dependency
	for _, occ := range occurrences {
		if !seen[occ.Dep.Name] {
			seen[occ.Dep.Name] = true
			deps = append(deps, occ.Dep)
		}
	}
	return deps
}

// extractPythonVersion reads the kernel specification when it names a python
// kernel with a version suffix.
func extractPythonVersion(nb *notebook.Notebook) *string {
	kernelspec, ok := nb.Metadata["kernelspec"].(map[string]any)
	if !ok {
		return nil
	}
	name, ok := kernelspec["name"].(string)
	if !ok || !strings.Contains(strings.ToLower(name), "python") {
		return nil
	}
	if m := kernelPythonPattern.FindStringSubmatch(name); m != nil {
		return strPtr("3." + m[1])
	}
	return nil
}

// estimateRuntime sums per-cell execution timestamps and buckets the total
// into a human-readable estimate. Absent when no cell carries timing data.
func estimateRuntime(nb *notebook.Notebook) *string {
	var total time.Duration
	count := 0

	for i := range nb.Cells {
		if !nb.Cells[i].IsCode() {
			continue
		}
		execMeta, ok := nb.Cells[i].Metadata["execution"].(map[string]any)
		if !ok {
			continue
		}
		start, okStart := parseExecutionTime(execMeta["iopub.execute_input"])
		end, okEnd := parseExecutionTime(execMeta["iopub.status.idle"])
		if okStart && okEnd {
			total += end.Sub(start)
			count++
		}
	}

	if count == 0 {
		return nil
	}

	minutes := int(total.Minutes())
	switch {
	case minutes < 1:
		return strPtr("< 1 minute")
	case minutes < 60:
		return strPtr(fmt.Sprintf("~%d minutes", minutes))
	default:
		return strPtr(fmt.Sprintf("~%d hours", minutes/60))
	}
}

func parseExecutionTime(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// estimateDifficulty scores advanced code patterns plus size indicators:
// +2 for more than 30 cells, +2 for more than 10 extracted dependencies.
func estimateDifficulty(nb *notebook.Notebook, depCount int) *Difficulty {
	code := nb.CodeText()

	score := 0
	for _, pattern := range advancedCodePatterns {
		score += len(pattern.FindAllString(code, -1))
	}
	if len(nb.Cells) > 30 {
		score += 2
	}
	if depCount > 10 {
		score += 2
	}

	difficulty := DifficultyBeginner
	switch {
	case score < 5:
		difficulty = DifficultyBeginner
	case score < 15:
		difficulty = DifficultyIntermediate
	default:
		difficulty = DifficultyAdvanced
	}
	return &difficulty
}

// matchLink returns the first match of a link pattern in markdown text.
func matchLink(nb *notebook.Notebook, pattern *regexp.Regexp) *string {
	if m := pattern.FindString(nb.MarkdownText()); m != "" {
		return strPtr(m)
	}
	return nil
}
