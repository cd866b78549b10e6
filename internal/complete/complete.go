// Package complete produces completion candidates for a cursor position in a
// Bjoern document: section keywords at the start of a line, and statement
// templates already used under the current Given, When or Then section.
package complete

import (
	"strings"

	"github.com/chriserin/zgr/internal/structure"
)

// Suggestion is one completion candidate. Caret is the offset within Text at
// which to place the cursor after insertion, or -1 to leave it at the end.
type Suggestion struct {
	Text   string
	Detail string
	Caret  int
}

const keywordDetail = "BDD keyword"

var keywordSuggestions = []string{
	"Feature:", "Background:", "Given:", "When:", "Then:", "Scenario:", "Scenarios:",
}

// Complete returns suggestions for offset in text. extra holds statement
// templates gathered elsewhere, such as other files of the project; they
// follow the document's own statements and duplicates are dropped.
func Complete(text string, offset int, extra map[structure.Keyword][]string) []Suggestion {
	var out []Suggestion

	if structure.AtKeywordPosition(text, offset) {
		for _, kw := range keywordSuggestions {
			out = append(out, Suggestion{Text: kw, Detail: keywordDetail, Caret: -1})
		}
	}

	section := structure.Section(text, offset)
	if !section.IsStep() {
		return out
	}

	prefix := "- "
	if structure.UnderListItem(text, offset) {
		prefix = ""
	}
	detail := section.String() + " suggestion"

	seen := make(map[string]bool)
	for _, tmpl := range append(Statements(text, section), extra[section]...) {
		if seen[tmpl] {
			continue
		}
		seen[tmpl] = true
		insert := prefix + tmpl
		out = append(out, Suggestion{Text: insert, Detail: detail, Caret: caret(insert)})
	}
	return out
}

// caret places the cursor inside the first empty variable placeholder.
func caret(insert string) int {
	if i := strings.Index(insert, `""`); i >= 0 {
		return i + 1
	}
	return -1
}
