package structure

import "strings"

const unit = "  "

func indent(levels int) string {
	return strings.Repeat(unit, levels)
}

// IndentFor returns the indentation for a line whose text before the cursor
// is currentLine, given the context the line sits in. The result is always
// a run of ASCII spaces in two-space steps.
func IndentFor(currentLine string, ctx Context) string {
	line := strings.TrimSpace(currentLine)

	switch {
	case strings.HasPrefix(line, "Feature:"),
		strings.HasPrefix(line, "Background:"),
		strings.HasPrefix(line, "Scenarios:"):
		return ""
	case strings.HasPrefix(line, "- Scenario:"):
		return indent(1)
	case stepKeyword(line) != None:
		if ctx.InScenario {
			return indent(2)
		}
		return indent(1)
	case strings.HasPrefix(line, "- "):
		if ctx.InScenario {
			return indent(3)
		}
		return indent(2)
	case ctx.LastSection.IsStep():
		if ctx.InScenario {
			return indent(3)
		}
		return indent(2)
	case ctx.InScenario:
		return indent(2)
	case ctx.InBackground:
		return indent(1)
	}
	return ""
}

// LineIndent answers the on-Enter query: the indentation for the line
// containing offset, judged from every line above it and the text already
// typed on it.
func LineIndent(text string, offset int) string {
	offset = clamp(offset, len(text))
	start := lineStart(text, offset)
	return IndentFor(text[start:offset], Classify(text, start))
}
