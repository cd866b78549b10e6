package lexer

import "github.com/chriserin/zgr/internal/token"

// QuotedScanner recognizes double-quoted variable literals in plain text.
// A quote closes the literal unless an odd number of backslashes precedes it.
type QuotedScanner struct {
	buf string
	end int
	pos int
}

func NewQuotedScanner() *QuotedScanner {
	return &QuotedScanner{}
}

func (s *QuotedScanner) Start(buf string, start, end int) {
	s.buf = buf
	s.end = end
	s.pos = start
}

func (s *QuotedScanner) Next() (token.Token, bool) {
	if s.pos >= s.end {
		return token.Token{}, false
	}
	start := s.pos

	open := s.nextQuote(start)
	if open < 0 {
		s.pos = s.end
		return token.Token{Kind: token.Text, Start: start, End: s.end}, true
	}

	closing := s.closingQuote(open + 1)
	if closing < 0 {
		// No later quote can close either: the backslash run before any
		// candidate stops at the dangling quote itself.
		s.pos = s.end
		return token.Token{Kind: token.Text, Start: start, End: s.end}, true
	}

	if open > start {
		s.pos = open
		return token.Token{Kind: token.Text, Start: start, End: open}, true
	}
	s.pos = closing + 1
	return token.Token{Kind: token.VariableLiteral, Start: open, End: s.pos}, true
}

func (s *QuotedScanner) nextQuote(from int) int {
	for i := from; i < s.end; i++ {
		if s.buf[i] == '"' {
			return i
		}
	}
	return -1
}

// closingQuote finds the first unescaped '"' at or after from.
func (s *QuotedScanner) closingQuote(from int) int {
	for i := from; i < s.end; i++ {
		if s.buf[i] != '"' {
			continue
		}
		backslashes := 0
		for j := i - 1; j >= from && s.buf[j] == '\\'; j-- {
			backslashes++
		}
		if backslashes%2 == 0 {
			return i
		}
	}
	return -1
}
