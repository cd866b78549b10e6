package token

import "fmt"

// InvariantError reports a scanner that broke the token contract: a span
// outside its window, an empty token, an overlap or a gap. It signals a
// programming error in a scanner and is never caused by document content.
type InvariantError struct {
	Layer  string
	Token  Token
	Window Span
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s: token %s in window %s", e.Layer, e.Reason, e.Token, e.Window)
}

// CheckCoverage verifies that tokens tile [start, end) exactly, in order,
// with no empty token, gap or overlap.
func CheckCoverage(tokens []Token, start, end int) error {
	window := Span{Start: start, End: end}
	cur := start
	for _, tok := range tokens {
		switch {
		case tok.Start >= tok.End:
			return &InvariantError{Layer: "coverage", Token: tok, Window: window, Reason: "empty token"}
		case tok.Start < cur:
			return &InvariantError{Layer: "coverage", Token: tok, Window: window, Reason: "overlap"}
		case tok.Start > cur:
			return &InvariantError{Layer: "coverage", Token: tok, Window: window, Reason: "gap"}
		case tok.End > end:
			return &InvariantError{Layer: "coverage", Token: tok, Window: window, Reason: "past window end"}
		}
		cur = tok.End
	}
	if cur != end {
		return &InvariantError{Layer: "coverage", Token: Token{Start: cur, End: end}, Window: window, Reason: "uncovered tail"}
	}
	return nil
}
