package structure

import "strings"

// Context is the structural position of an offset. It is derived from the
// text before the offset on every query and never cached.
type Context struct {
	InBackground bool
	InScenarios  bool
	InScenario   bool
	LastSection  Keyword // Given, When, Then or None
}

// Classify folds forward over the lines of text[:offset] and returns the
// context in effect at offset. Offsets outside the text are clamped.
func Classify(text string, offset int) Context {
	offset = clamp(offset, len(text))

	var ctx Context
	for line := range strings.Lines(text[:offset]) {
		ctx = ctx.step(strings.TrimSpace(line))
	}
	return ctx
}

func (ctx Context) step(trimmed string) Context {
	switch {
	case strings.HasPrefix(trimmed, "Background:"):
		return Context{InBackground: true}
	case strings.HasPrefix(trimmed, "Scenarios:"):
		return Context{InScenarios: true}
	case strings.HasPrefix(trimmed, "- Scenario:"):
		ctx.InScenario = true
		ctx.InBackground = false
		ctx.LastSection = None
	default:
		if k := stepKeyword(trimmed); k != None {
			ctx.LastSection = k
		}
	}
	return ctx
}

// stepKeyword returns Given, When or Then when the trimmed line opens that section.
func stepKeyword(trimmed string) Keyword {
	for _, k := range []Keyword{Given, When, Then} {
		if strings.HasPrefix(trimmed, k.String()+":") {
			return k
		}
	}
	return None
}

// Section returns the Given/When/Then section governing offset, or None.
func Section(text string, offset int) Keyword {
	return Classify(text, offset).LastSection
}

// AtKeywordPosition reports whether the cursor is where a keyword may be
// typed: the start of the document or of a line, or after indentation only.
func AtKeywordPosition(text string, offset int) bool {
	offset = clamp(offset, len(text))
	if offset == 0 {
		return true
	}
	return strings.TrimSpace(text[lineStart(text, offset):offset]) == ""
}

// UnderListItem reports whether the line holding offset already starts a
// list item before the cursor.
func UnderListItem(text string, offset int) bool {
	offset = clamp(offset, len(text))
	if offset == 0 {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(text[lineStart(text, offset):offset]), "-")
}

func lineStart(text string, offset int) int {
	return strings.LastIndexByte(text[:offset], '\n') + 1
}

func clamp(offset, n int) int {
	if offset < 0 {
		return 0
	}
	if offset > n {
		return n
	}
	return offset
}
