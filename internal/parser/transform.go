package parser

import (
	"strings"

	"github.com/chriserin/zgr/internal/complete"
	"github.com/chriserin/zgr/internal/structure"
)

// ParsedFile is the Layer 2 application model extracted from the AST.
type ParsedFile struct {
	Name       string
	Scenarios  []ParsedScenario
	Statements []ParsedStatement
	Errors     []ParseError
}

// ParsedScenario represents a single scenario extracted from a .zgr file.
type ParsedScenario struct {
	Name    string // from the Scenario: key
	Content string // raw text from the "- Scenario:" line to the end of the scenario
	Line    int    // 1-based line of the "- Scenario:" item
}

// ParsedStatement is a step with its quoted variables blanked, unique per
// keyword within a file.
type ParsedStatement struct {
	Keyword  structure.Keyword
	Template string
	Line     int // first occurrence
}

// Transform converts a Layer 1 Document into a Layer 2 ParsedFile.
func Transform(doc *Document, content []byte, errors []ParseError) *ParsedFile {
	pf := &ParsedFile{
		Name:   doc.Feature.Name,
		Errors: errors,
	}

	seen := make(map[ParsedStatement]bool)
	collect := func(groups []StepGroup) {
		for _, g := range groups {
			for _, st := range g.Steps {
				key := ParsedStatement{Keyword: g.Keyword, Template: complete.Template(st.Text)}
				if seen[key] {
					continue
				}
				seen[key] = true
				key.Line = st.Line
				pf.Statements = append(pf.Statements, key)
			}
		}
	}
	if doc.Feature.Background != nil {
		collect(doc.Feature.Background.StepGroups)
	}

	lines := strings.Split(string(content), "\n")
	scenarios := doc.Feature.Scenarios
	for i, sc := range scenarios {
		collect(sc.StepGroups)

		startLine := sc.Line - 1 // 0-based
		endLine := len(lines)
		if i+1 < len(scenarios) {
			endLine = scenarios[i+1].Line - 1
		}

		// Walk back over blank and comment lines before the next scenario
		for endLine > startLine {
			t := strings.TrimSpace(lines[endLine-1])
			if t == "" || strings.HasPrefix(t, "#") {
				endLine--
				continue
			}
			break
		}

		ps := ParsedScenario{Name: sc.Name, Line: sc.Line}
		if startLine >= 0 && startLine < endLine {
			ps.Content = strings.Join(lines[startLine:endLine], "\n")
		}
		pf.Scenarios = append(pf.Scenarios, ps)
	}

	return pf
}

// ParseFile parses and transforms content in one step.
func ParseFile(filename string, content []byte) *ParsedFile {
	doc, errs := Parse(filename, content)
	return Transform(doc, content, errs)
}
