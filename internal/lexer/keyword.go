package lexer

import (
	"strings"

	"github.com/chriserin/zgr/internal/structure"
	"github.com/chriserin/zgr/internal/token"
)

// KeywordSet is the closed set of key spellings accepted as BDD keywords.
// Matching is exact and case-sensitive.
type KeywordSet map[string]struct{}

func NewKeywordSet(words ...string) KeywordSet {
	set := make(KeywordSet, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// DefaultKeywords holds Feature, Background, Given, When, Then, Scenario and Scenarios.
func DefaultKeywords() KeywordSet {
	return NewKeywordSet(structure.KeywordNames()...)
}

func (k KeywordSet) Contains(word string) bool {
	_, ok := k[word]
	return ok
}

// KeywordScanner classifies a whole key span as one ValidKeyword or
// InvalidKeyword token. It never splits a key.
type KeywordScanner struct {
	keywords KeywordSet
	buf      string
	start    int
	end      int
	done     bool
}

func NewKeywordScanner(keywords KeywordSet) *KeywordScanner {
	return &KeywordScanner{keywords: keywords}
}

func (s *KeywordScanner) Start(buf string, start, end int) {
	s.buf = buf
	s.start = start
	s.end = end
	s.done = start >= end
}

func (s *KeywordScanner) Next() (token.Token, bool) {
	if s.done {
		return token.Token{}, false
	}
	s.done = true

	kind := token.InvalidKeyword
	if s.keywords.Contains(KeyName(s.buf[s.start:s.end])) {
		kind = token.ValidKeyword
	}
	return token.Token{Kind: kind, Start: s.start, End: s.end}, true
}

// KeyName normalizes key text: surrounding whitespace and one trailing colon
// are removed.
func KeyName(text string) string {
	text = strings.TrimSpace(text)
	return strings.TrimSuffix(text, ":")
}
