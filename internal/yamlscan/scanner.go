// Package yamlscan turns YAML-like text into a flat stream of primitive
// tokens: indentation and separators, sequence dashes, mapping keys with their
// colon, plain text and line ends.
//
// It understands only the block subset the Bjoern dialect is written in. Flow
// collections, anchors, tags and multi-document streams come out as plain
// text, which is all the layers above it need.
package yamlscan

import "github.com/chriserin/zgr/internal/token"

// Scanner produces contiguous primitive tokens over a window of a buffer.
// A Scanner is reusable through Start but not safe for concurrent use.
type Scanner struct {
	buf     string
	end     int
	pos     int
	pending []token.Token
}

func New() *Scanner {
	return &Scanner{}
}

// Start resets the scanner onto buf[start:end].
func (s *Scanner) Start(buf string, start, end int) {
	s.buf = buf
	s.end = end
	s.pos = start
	s.pending = s.pending[:0]
}

// Next returns the next token, or false once the window is exhausted.
func (s *Scanner) Next() (token.Token, bool) {
	if len(s.pending) == 0 {
		if s.pos >= s.end {
			return token.Token{}, false
		}
		s.scanLine()
	}
	tok := s.pending[0]
	s.pending = s.pending[1:]
	return tok, true
}

// scanLine queues every token of the line starting at s.pos, including its
// line terminator when the window contains one.
func (s *Scanner) scanLine() {
	lineEnd := s.pos
	for lineEnd < s.end && !isEOL(s.buf[lineEnd]) {
		lineEnd++
	}

	p := s.blank(s.pos, lineEnd)

	// "- - item" nests sequences; each marker is its own token.
	for p < lineEnd && s.buf[p] == '-' && (p+1 == lineEnd || isBlank(s.buf[p+1])) {
		s.emit(token.Dash, p, p+1)
		p = s.blank(p+1, lineEnd)
	}

	if p < lineEnd {
		if colon := s.keyColon(p, lineEnd); colon > p {
			s.emit(token.Key, p, colon)
			s.emit(token.Colon, colon, colon+1)
			p = s.blank(colon+1, lineEnd)
		}
		if p < lineEnd {
			s.emit(token.Text, p, lineEnd)
		}
	}

	s.pos = lineEnd
	if lineEnd < s.end {
		n := 1
		if s.buf[lineEnd] == '\r' && lineEnd+1 < s.end && s.buf[lineEnd+1] == '\n' {
			n = 2
		}
		s.emit(token.EOL, lineEnd, lineEnd+n)
		s.pos = lineEnd + n
	}
}

// blank emits a Whitespace token over the run of spaces and tabs at p and
// returns the first offset after it.
func (s *Scanner) blank(p, lineEnd int) int {
	q := p
	for q < lineEnd && isBlank(s.buf[q]) {
		q++
	}
	if q > p {
		s.emit(token.Whitespace, p, q)
	}
	return q
}

// keyColon returns the offset of the colon ending a "key:" form at p, or -1.
// A key cannot start with a comment or quote, and the colon must be followed
// by a blank or the end of the line.
func (s *Scanner) keyColon(p, lineEnd int) int {
	switch s.buf[p] {
	case '#', '"', '\'':
		return -1
	}
	for i := p; i < lineEnd; i++ {
		switch c := s.buf[i]; c {
		case '"', '\'':
			return -1
		case '#':
			if isBlank(s.buf[i-1]) {
				return -1
			}
		case ':':
			if i > p && (i+1 == lineEnd || isBlank(s.buf[i+1])) {
				return i
			}
		}
	}
	return -1
}

func (s *Scanner) emit(kind token.Kind, start, end int) {
	s.pending = append(s.pending, token.Token{Kind: kind, Start: start, End: end})
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' }

func isEOL(c byte) bool { return c == '\n' || c == '\r' }
