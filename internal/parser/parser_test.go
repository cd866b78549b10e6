package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/zgr/internal/structure"
)

const wine = `Feature: Wine cellar
Background:
  Given:
    - there are "2" bottles of wine
Scenarios:
  - Scenario: Drink one
    When:
      - I drink "1" bottle
    Then:
      - there is "1" bottle left
  - Scenario: Drink none
    Then:
      - there are "2" bottles of wine
`

func TestParse_Feature(t *testing.T) {
	doc, errors := Parse("cellar.zgr", []byte(wine))
	require.Empty(t, errors)
	assert.Equal(t, "Wine cellar", doc.Feature.Name)
	assert.Equal(t, 1, doc.Feature.Line)
}

func TestParse_Background(t *testing.T) {
	doc, errors := Parse("cellar.zgr", []byte(wine))
	require.Empty(t, errors)
	require.NotNil(t, doc.Feature.Background)
	assert.Equal(t, 2, doc.Feature.Background.Line)

	groups := doc.Feature.Background.StepGroups
	require.Len(t, groups, 1)
	assert.Equal(t, structure.Given, groups[0].Keyword)
	assert.Equal(t, []Step{{Text: `there are "2" bottles of wine`, Line: 4}}, groups[0].Steps)
}

func TestParse_Scenarios(t *testing.T) {
	doc, errors := Parse("cellar.zgr", []byte(wine))
	require.Empty(t, errors)
	require.Len(t, doc.Feature.Scenarios, 2)

	first := doc.Feature.Scenarios[0]
	assert.Equal(t, "Drink one", first.Name)
	assert.Equal(t, 6, first.Line)
	require.Len(t, first.StepGroups, 2)
	assert.Equal(t, structure.When, first.StepGroups[0].Keyword)
	assert.Equal(t, structure.Then, first.StepGroups[1].Keyword)
	assert.Equal(t, 10, first.StepGroups[1].Steps[0].Line)

	assert.Equal(t, "Drink none", doc.Feature.Scenarios[1].Name)
	assert.Equal(t, 11, doc.Feature.Scenarios[1].Line)
}

func TestParse_NoFeatureLine(t *testing.T) {
	doc, errors := Parse("features/login.zgr", []byte("Scenarios:\n  - Scenario: a\n"))
	require.Empty(t, errors)
	assert.Equal(t, "login", doc.Feature.Name)
	assert.Equal(t, 0, doc.Feature.Line)
}

func TestParse_EmptyFile(t *testing.T) {
	doc, errors := Parse("empty.zgr", []byte(""))
	require.Empty(t, errors)
	assert.Equal(t, "empty", doc.Feature.Name)
	assert.Empty(t, doc.Feature.Scenarios)
}

func TestParse_CommentsOnly(t *testing.T) {
	doc, errors := Parse("notes.zgr", []byte("# nothing yet\n"))
	require.Empty(t, errors)
	assert.Equal(t, "notes", doc.Feature.Name)
}

func TestParse_EmptyStepGroup(t *testing.T) {
	doc, errors := Parse("a.zgr", []byte("Background:\n  Given:\n"))
	require.Empty(t, errors)
	require.Len(t, doc.Feature.Background.StepGroups, 1)
	assert.Empty(t, doc.Feature.Background.StepGroups[0].Steps)
}

func TestParse_InvalidKeyword(t *testing.T) {
	content := []byte(`Feature: x
Scenarios:
  - Scenario: a
    Giver:
      - typo
`)
	_, errors := Parse("a.zgr", content)
	require.Len(t, errors, 1)
	assert.Equal(t, ParseError{Line: 4, Message: `invalid keyword "Giver"`}, errors[0])
}

func TestParse_InvalidRootKeyword(t *testing.T) {
	_, errors := Parse("a.zgr", []byte("Feature: x\nRule: y\n"))
	require.Len(t, errors, 1)
	assert.Equal(t, 2, errors[0].Line)
	assert.Contains(t, errors[0].Message, `"Rule"`)
}

func TestParse_StepOutsideSection(t *testing.T) {
	_, errors := Parse("a.zgr", []byte("Given:\n  - a\n"))
	require.Len(t, errors, 1)
	assert.Equal(t, "Given: must be nested under Background or Scenarios", errors[0].Message)
}

func TestParse_StepGroupNotList(t *testing.T) {
	_, errors := Parse("a.zgr", []byte("Background:\n  Given: a user\n"))
	require.Len(t, errors, 1)
	assert.Equal(t, ParseError{Line: 2, Message: "Given: must be a list of steps"}, errors[0])
}

func TestParse_NestedStep(t *testing.T) {
	_, errors := Parse("a.zgr", []byte("Background:\n  Given:\n    - a: b\n"))
	require.Len(t, errors, 1)
	assert.Equal(t, 3, errors[0].Line)
	assert.Equal(t, "Given step must be plain text", errors[0].Message)
}

func TestParse_ScenarioNotMapping(t *testing.T) {
	_, errors := Parse("a.zgr", []byte("Scenarios:\n  - just text\n"))
	require.Len(t, errors, 1)
	assert.Equal(t, "scenario must start with Scenario:", errors[0].Message)
}

func TestParse_FeatureInScenario(t *testing.T) {
	_, errors := Parse("a.zgr", []byte("Scenarios:\n  - Scenario: a\n    Feature: b\n"))
	require.Len(t, errors, 1)
	assert.Equal(t, "Feature: is not allowed in a scenario", errors[0].Message)
}

func TestParse_RootNotMapping(t *testing.T) {
	_, errors := Parse("a.zgr", []byte("- a\n- b\n"))
	require.Len(t, errors, 1)
	assert.Equal(t, "document must be a mapping of keywords", errors[0].Message)
}

func TestParse_YAMLSyntaxError(t *testing.T) {
	doc, errors := Parse("broken.zgr", []byte("Feature: x\nBackground:\n  Given:\n    - a\n   bad: [\n"))
	require.NotEmpty(t, errors)
	assert.Positive(t, errors[0].Line)
	assert.NotContains(t, errors[0].Message, "yaml:")
	assert.Equal(t, "broken", doc.Feature.Name)
}
