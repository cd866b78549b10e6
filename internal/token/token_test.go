package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "VARIABLE_LITERAL", VariableLiteral.String())
	assert.Equal(t, "EOL", EOL.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}

func TestToken_Text(t *testing.T) {
	buf := "Given: a"
	tok := Token{Kind: Key, Start: 0, End: 5}
	assert.Equal(t, "Given", tok.Text(buf))
	assert.Equal(t, 5, tok.Span().Len())
}

func TestCheckCoverage_Exact(t *testing.T) {
	tokens := []Token{
		{Kind: Text, Start: 2, End: 4},
		{Kind: Comment, Start: 4, End: 9},
	}
	require.NoError(t, CheckCoverage(tokens, 2, 9))
}

func TestCheckCoverage_EmptyWindow(t *testing.T) {
	require.NoError(t, CheckCoverage(nil, 3, 3))
}

func TestCheckCoverage_Failures(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
		reason string
	}{
		{"gap", []Token{{Kind: Text, Start: 0, End: 2}, {Kind: Text, Start: 3, End: 5}}, "gap"},
		{"overlap", []Token{{Kind: Text, Start: 0, End: 3}, {Kind: Text, Start: 2, End: 5}}, "overlap"},
		{"empty", []Token{{Kind: Text, Start: 0, End: 0}}, "empty token"},
		{"past end", []Token{{Kind: Text, Start: 0, End: 6}}, "past window end"},
		{"tail", []Token{{Kind: Text, Start: 0, End: 4}}, "uncovered tail"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCoverage(tt.tokens, 0, 5)
			require.Error(t, err)
			var ie *InvariantError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tt.reason, ie.Reason)
		})
	}
}
