package complete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/zgr/internal/structure"
)

func TestStatements_Extraction(t *testing.T) {
	text := "Given:\n  - there are \"2\" bottles of wine\n  - there are \"0\" bottles of beer\n"
	assert.Equal(t, []string{
		`there are "" bottles of wine`,
		`there are "" bottles of beer`,
	}, Statements(text, structure.Given))
}

func TestStatements_UniqueAcrossSections(t *testing.T) {
	text := `Background:
  Given:
    - a user "bob"
Scenarios:
  - Scenario: one
    Given:
      - a user "alice"
      - a cart
    When:
      - checking out
  - Scenario: two
    Given:

      - a cart
`
	assert.Equal(t, []string{`a user ""`, "a cart"}, Statements(text, structure.Given))
	assert.Equal(t, []string{"checking out"}, Statements(text, structure.When))
	assert.Empty(t, Statements(text, structure.Then))
}

func TestStatements_StopsAtNextScenario(t *testing.T) {
	text := "Scenarios:\n- Scenario: a\n  Then:\n  - done\n- Scenario: b\n"
	assert.Equal(t, []string{"done"}, Statements(text, structure.Then))
}

func TestStatements_LastLineWithoutNewline(t *testing.T) {
	assert.Equal(t, []string{"x"}, Statements("When: # note\n  - x", structure.When))
}

func TestStatements_HeaderMustStandAlone(t *testing.T) {
	assert.Empty(t, Statements("Given: inline\n  - x\n", structure.Given))
	assert.Empty(t, Statements("- Given: x\n  - y\n", structure.Given))
}

func TestTemplate(t *testing.T) {
	assert.Equal(t, `log in as "" with ""`, Template(`log in as "bob" with "secret"`))
	assert.Equal(t, "plain", Template("plain"))
}

func TestComplete_KeywordsAtLineStart(t *testing.T) {
	text := "Feature: x\n"
	got := Complete(text, len(text), nil)
	require.Len(t, got, 7)
	assert.Equal(t, Suggestion{Text: "Feature:", Detail: "BDD keyword", Caret: -1}, got[0])
	assert.Equal(t, "Scenarios:", got[6].Text)
}

func TestComplete_StatementsForSection(t *testing.T) {
	text := "Background:\n  Given:\n    - a user \"bob\"\n    - "
	got := Complete(text, len(text), nil)
	require.Len(t, got, 1)
	assert.Equal(t, Suggestion{Text: `a user ""`, Detail: "Given suggestion", Caret: 8}, got[0])
}

func TestComplete_PrefixesDashOffList(t *testing.T) {
	text := "Background:\n  Given:\n    - a cart\n    "
	got := Complete(text, len(text), nil)

	var statements []Suggestion
	for _, s := range got {
		if s.Detail != "BDD keyword" {
			statements = append(statements, s)
		}
	}
	require.Len(t, statements, 1)
	assert.Equal(t, "- a cart", statements[0].Text)
	assert.Equal(t, -1, statements[0].Caret)
}

func TestComplete_ExtraStatements(t *testing.T) {
	text := "Background:\n  Then:\n    - it works\n    - "
	extra := map[structure.Keyword][]string{
		structure.Then:  {"it works", `an email to ""`},
		structure.Given: {"ignored"},
	}
	got := Complete(text, len(text), extra)
	require.Len(t, got, 2)
	assert.Equal(t, "it works", got[0].Text)
	assert.Equal(t, `an email to ""`, got[1].Text)
	assert.Equal(t, 13, got[1].Caret)
}

func TestComplete_NothingOutsideSections(t *testing.T) {
	text := "Feature: x"
	assert.Empty(t, Complete(text, len(text), nil))
}
