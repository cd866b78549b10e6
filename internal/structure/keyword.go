// Package structure infers where an offset sits in a Bjoern document
// (Background, a Scenario, the last Given/When/Then section) and derives the
// indentation for a new line from it.
package structure

// Keyword is one of the Bjoern section keywords.
type Keyword int

const (
	None Keyword = iota
	Feature
	Background
	Given
	When
	Then
	Scenario
	Scenarios
)

var keywordNames = [...]string{
	None:       "",
	Feature:    "Feature",
	Background: "Background",
	Given:      "Given",
	When:       "When",
	Then:       "Then",
	Scenario:   "Scenario",
	Scenarios:  "Scenarios",
}

func (k Keyword) String() string {
	if k < 0 || int(k) >= len(keywordNames) {
		return ""
	}
	return keywordNames[k]
}

// IsStep reports whether k opens a Given, When or Then section.
func (k Keyword) IsStep() bool {
	return k == Given || k == When || k == Then
}

// ParseKeyword maps the canonical spelling to its Keyword, or None.
func ParseKeyword(s string) Keyword {
	for k := Feature; k <= Scenarios; k++ {
		if keywordNames[k] == s {
			return k
		}
	}
	return None
}

// KeywordNames lists every keyword spelling in declaration order.
func KeywordNames() []string {
	names := make([]string, 0, len(keywordNames)-1)
	for k := Feature; k <= Scenarios; k++ {
		names = append(names, keywordNames[k])
	}
	return names
}
