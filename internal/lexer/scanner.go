// Package lexer layers the Bjoern sub-scanners over the primitive YAML token
// stream: keys are classified as valid or invalid keywords, and plain text is
// split into comments, quoted variable literals and remaining text.
package lexer

import (
	"iter"

	"github.com/chriserin/zgr/internal/token"
	"github.com/chriserin/zgr/internal/yamlscan"
)

// Scanner is a restartable token source bounded to a window of a buffer.
// Start positions the scanner on buf[start:end]; Next yields tokens until
// the window is exhausted. Tokens never reach outside the window.
type Scanner interface {
	Start(buf string, start, end int)
	Next() (token.Token, bool)
}

// All adapts a started Scanner to an iterator. The sequence is single use:
// ranging over it drains the scanner.
func All(s Scanner) iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok, ok := s.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Collect drains a started Scanner into a slice.
func Collect(s Scanner) []token.Token {
	var out []token.Token
	for tok := range All(s) {
		out = append(out, tok)
	}
	return out
}

// New builds the full Bjoern tokenizer: the YAML base stream with keys routed
// to keyword validation and plain text routed to the comment layer, whose own
// text is in turn scanned for quoted literals.
func New(keywords KeywordSet) *Layered {
	text := NewLayered("text", NewCommentScanner())
	mustRegister(text, token.Text, NewQuotedScanner())

	l := NewLayered("bjoern", yamlscan.New())
	mustRegister(l, token.Key, NewKeywordScanner(keywords))
	mustRegister(l, token.Text, text)
	return l
}

// Tokenize runs a fresh tokenizer over the whole of buf.
func Tokenize(buf string, keywords KeywordSet) []token.Token {
	l := New(keywords)
	l.Start(buf, 0, len(buf))
	return Collect(l)
}

func mustRegister(l *Layered, kind token.Kind, s Scanner) {
	if err := l.Register(kind, s); err != nil {
		panic(err)
	}
}
