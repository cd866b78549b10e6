package complete

import (
	"regexp"
	"strings"

	"github.com/chriserin/zgr/internal/structure"
)

var variablePattern = regexp.MustCompile(`"[^"]*"`)

// Template blanks every quoted variable in a statement: `a "2" b` becomes `a "" b`.
func Template(statement string) string {
	return variablePattern.ReplaceAllString(statement, `""`)
}

// Statements collects the list items under every "<keyword>:" line of text,
// as variable-free templates. Order of first appearance is kept and
// duplicates are dropped.
func Statements(text string, keyword structure.Keyword) []string {
	header := keyword.String() + ":"
	lines := strings.Split(text, "\n")

	var out []string
	seen := make(map[string]bool)
	for i := 0; i < len(lines); i++ {
		if !opensSection(lines[i], header) {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			item, ok, blank := listItem(lines[j])
			if blank {
				continue
			}
			if !ok {
				break
			}
			i = j
			if item == "" {
				continue
			}
			tmpl := Template(item)
			if !seen[tmpl] {
				seen[tmpl] = true
				out = append(out, tmpl)
			}
		}
	}
	return out
}

// opensSection reports whether line is the header, alone up to an optional comment.
func opensSection(line, header string) bool {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), header)
	if !ok {
		return false
	}
	rest = strings.TrimSpace(rest)
	return rest == "" || strings.HasPrefix(rest, "#")
}

// listItem returns the statement text of a "- item" line. A line that starts
// a new scenario ends the list rather than joining it.
func listItem(line string) (item string, ok, blank bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false, true
	}
	if !strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "- Scenario:") {
		return "", false, false
	}
	return strings.TrimSpace(strings.TrimPrefix(trimmed, "-")), true, false
}
