package token

import "fmt"

// Kind is the lexical category of a token.
type Kind int

const (
	Invalid Kind = iota

	// Produced by the sub-scanners.
	Text
	Comment
	VariableLiteral
	ValidKeyword
	InvalidKeyword

	// Passed through from the base scanner.
	Key
	Colon
	Dash
	Whitespace
	EOL
)

var kindNames = [...]string{
	Invalid:         "INVALID",
	Text:            "TEXT",
	Comment:         "COMMENT",
	VariableLiteral: "VARIABLE_LITERAL",
	ValidKeyword:    "VALID_KEYWORD",
	InvalidKeyword:  "INVALID_KEYWORD",
	Key:             "KEY",
	Colon:           "COLON",
	Dash:            "DASH",
	Whitespace:      "WHITESPACE",
	EOL:             "EOL",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Span is a half-open byte range [Start, End) over a shared buffer.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int { return s.End - s.Start }

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Token is a typed span. Tokens never own text; they index into the buffer
// the scanner was started on.
type Token struct {
	Kind  Kind
	Start int
	End   int
}

func (t Token) Span() Span { return Span{Start: t.Start, End: t.End} }

// Text returns the slice of buf covered by the token.
func (t Token) Text(buf string) string {
	return buf[t.Start:t.End]
}

func (t Token) String() string {
	return fmt.Sprintf("%s[%d,%d)", t.Kind, t.Start, t.End)
}
