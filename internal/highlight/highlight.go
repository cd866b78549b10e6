// Package highlight maps layered tokens to highlight attributes and paints
// documents for the terminal.
package highlight

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/chriserin/zgr/internal/token"
)

const (
	Keyword        = "BJOERN_KEYWORD"
	InvalidKeyword = "BJOERN_INVALID_KEYWORD"
	ScalarKey      = "BJOERN_SCALAR_KEY"
	ScalarValue    = "BJOERN_SCALAR_VALUE"
	Variable       = "BJOERN_VARIABLE"
	Comment        = "BJOERN_COMMENT"
)

// Attribute returns the highlight attribute for kind, or "" for kinds drawn
// without one (punctuation, whitespace, line ends).
func Attribute(kind token.Kind) string {
	switch kind {
	case token.ValidKeyword:
		return Keyword
	case token.InvalidKeyword:
		return InvalidKeyword
	case token.Key:
		return ScalarKey
	case token.VariableLiteral:
		return Variable
	case token.Comment:
		return Comment
	case token.Text:
		return ScalarValue
	}
	return ""
}

var styles = map[string]lipgloss.Style{
	Keyword:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
	InvalidKeyword: lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("1")),
	ScalarKey:      lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	ScalarValue:    lipgloss.NewStyle(),
	Variable:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	Comment:        lipgloss.NewStyle().Faint(true).Italic(true),
}

// Render writes buf to w with every token painted in the style of its
// attribute. tokens must cover buf in order.
func Render(w io.Writer, buf string, tokens []token.Token) error {
	for _, t := range tokens {
		text := t.Text(buf)
		if style, ok := styles[Attribute(t.Kind)]; ok {
			text = style.TabWidth(lipgloss.NoTabConversion).Render(text)
		}
		if _, err := io.WriteString(w, text); err != nil {
			return fmt.Errorf("rendering %s: %w", t, err)
		}
	}
	return nil
}
