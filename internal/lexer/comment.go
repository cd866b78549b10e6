package lexer

import "github.com/chriserin/zgr/internal/token"

// CommentScanner splits plain text at the first '#' into Text and a Comment
// running to the end of the line. '#' is never escaped.
type CommentScanner struct {
	buf string
	end int
	pos int
}

func NewCommentScanner() *CommentScanner {
	return &CommentScanner{}
}

func (s *CommentScanner) Start(buf string, start, end int) {
	s.buf = buf
	s.end = end
	s.pos = start
}

func (s *CommentScanner) Next() (token.Token, bool) {
	if s.pos >= s.end {
		return token.Token{}, false
	}
	start := s.pos

	if s.buf[start] == '#' {
		s.pos = s.lineEnd(start)
		return token.Token{Kind: token.Comment, Start: start, End: s.pos}, true
	}

	s.pos = s.nextHash(start)
	return token.Token{Kind: token.Text, Start: start, End: s.pos}, true
}

func (s *CommentScanner) lineEnd(from int) int {
	for i := from; i < s.end; i++ {
		if s.buf[i] == '\n' || s.buf[i] == '\r' {
			return i
		}
	}
	return s.end
}

// nextHash returns the offset of the next '#', or the window end.
func (s *CommentScanner) nextHash(from int) int {
	for i := from; i < s.end; i++ {
		if s.buf[i] == '#' {
			return i
		}
	}
	return s.end
}
