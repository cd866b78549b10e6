package lexer

import (
	"errors"
	"fmt"

	"github.com/chriserin/zgr/internal/token"
)

var ErrKindRegistered = errors.New("token kind already has a layer")

// Layered overlays sub-scanners on a base scanner. Every base token whose
// kind has a registered layer is replaced by that layer's tokens over exactly
// the same span; other tokens pass through unchanged.
//
// The cursor only moves forward. A layer that emits an empty token, skips or
// revisits bytes, or reaches past its span panics with *token.InvariantError.
type Layered struct {
	name   string
	base   Scanner
	layers map[token.Kind]Scanner

	buf   string
	start int
	end   int
	cur   int

	sub     Scanner
	subSpan token.Span
}

func NewLayered(name string, base Scanner) *Layered {
	return &Layered{
		name:   name,
		base:   base,
		layers: make(map[token.Kind]Scanner),
	}
}

// Register routes base tokens of kind to s. Each kind takes at most one layer.
func (l *Layered) Register(kind token.Kind, s Scanner) error {
	if _, ok := l.layers[kind]; ok {
		return fmt.Errorf("%s: %s: %w", l.name, kind, ErrKindRegistered)
	}
	l.layers[kind] = s
	return nil
}

func (l *Layered) Start(buf string, start, end int) {
	if start < 0 || end > len(buf) || start > end {
		panic(&token.InvariantError{
			Layer:  l.name,
			Window: token.Span{Start: start, End: end},
			Reason: "window outside buffer",
		})
	}
	l.buf = buf
	l.start = start
	l.end = end
	l.cur = start
	l.sub = nil
	l.base.Start(buf, start, end)
}

func (l *Layered) Next() (token.Token, bool) {
	for {
		if l.sub != nil {
			tok, ok := l.sub.Next()
			if ok {
				l.check(tok, l.subSpan, "layer")
				l.cur = tok.End
				return tok, true
			}
			if l.cur != l.subSpan.End {
				l.fail(token.Token{Start: l.cur, End: l.subSpan.End}, l.subSpan, "layer left span uncovered")
			}
			l.sub = nil
		}

		tok, ok := l.base.Next()
		if !ok {
			if l.cur != l.end {
				l.fail(token.Token{Start: l.cur, End: l.end}, l.window(), "base left window uncovered")
			}
			return token.Token{}, false
		}
		l.check(tok, l.window(), "base")

		if sub, ok := l.layers[tok.Kind]; ok {
			l.sub = sub
			l.subSpan = tok.Span()
			sub.Start(l.buf, tok.Start, tok.End)
			continue
		}
		l.cur = tok.End
		return tok, true
	}
}

func (l *Layered) window() token.Span {
	return token.Span{Start: l.start, End: l.end}
}

func (l *Layered) check(tok token.Token, within token.Span, who string) {
	switch {
	case tok.Start >= tok.End:
		l.fail(tok, within, who+" emitted empty token")
	case tok.Start != l.cur:
		l.fail(tok, within, who+" token is not contiguous")
	case tok.Start < within.Start || tok.End > within.End:
		l.fail(tok, within, who+" token outside its span")
	}
}

func (l *Layered) fail(tok token.Token, within token.Span, reason string) {
	panic(&token.InvariantError{Layer: l.name, Token: tok, Window: within, Reason: reason})
}
