package parser

import "github.com/chriserin/zgr/internal/structure"

// Layer 1: AST built from the YAML node tree

type Document struct {
	Feature *Feature
}

type Feature struct {
	Name       string
	Line       int // 1-based line of Feature:, 0 when absent
	Background *Background
	Scenarios  []Scenario
}

type Background struct {
	Line       int
	StepGroups []StepGroup
}

type Scenario struct {
	Name       string
	Line       int // 1-based line of the "- Scenario:" item
	StepGroups []StepGroup
}

// StepGroup is one Given, When or Then section and its list of steps.
type StepGroup struct {
	Keyword structure.Keyword
	Line    int
	Steps   []Step
}

type Step struct {
	Text string
	Line int
}

type ParseError struct {
	Line    int
	Message string
}
