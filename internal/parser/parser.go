package parser

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chriserin/zgr/internal/structure"
)

var yamlLinePattern = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)

// Parse parses a .zgr document and returns its AST and any parse errors.
// The Feature name falls back to the file name without extension.
func Parse(filename string, content []byte) (*Document, []ParseError) {
	p := &parser{}
	feature := &Feature{}
	doc := &Document{Feature: feature}

	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		p.errors = append(p.errors, yamlError(err))
	} else if len(root.Content) > 0 {
		p.feature(feature, root.Content[0])
	}

	if feature.Name == "" {
		feature.Name = filenameWithoutExt(filename)
	}
	return doc, p.errors
}

type parser struct {
	errors []ParseError
}

func (p *parser) errorf(line int, format string, args ...any) {
	p.errors = append(p.errors, ParseError{Line: line, Message: fmt.Sprintf(format, args...)})
}

func (p *parser) feature(f *Feature, n *yaml.Node) {
	if isNull(n) {
		return
	}
	if n.Kind != yaml.MappingNode {
		p.errorf(n.Line, "document must be a mapping of keywords")
		return
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		switch structure.ParseKeyword(key.Value) {
		case structure.Feature:
			f.Line = key.Line
			f.Name = strings.TrimSpace(value.Value)
		case structure.Background:
			f.Background = &Background{Line: key.Line, StepGroups: p.stepGroups(value)}
		case structure.Scenarios:
			f.Scenarios = append(f.Scenarios, p.scenarios(value)...)
		case structure.Given, structure.When, structure.Then, structure.Scenario:
			p.errorf(key.Line, "%s: must be nested under Background or Scenarios", key.Value)
		default:
			p.errorf(key.Line, "invalid keyword %q", key.Value)
		}
	}
}

func (p *parser) scenarios(n *yaml.Node) []Scenario {
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		p.errorf(n.Line, "Scenarios: must be a list of scenarios")
		return nil
	}

	var out []Scenario
	for _, item := range n.Content {
		if item.Kind != yaml.MappingNode {
			p.errorf(item.Line, "scenario must start with Scenario:")
			continue
		}
		sc := Scenario{Line: item.Line}
		for i := 0; i+1 < len(item.Content); i += 2 {
			key, value := item.Content[i], item.Content[i+1]
			switch k := structure.ParseKeyword(key.Value); {
			case k == structure.Scenario:
				sc.Name = strings.TrimSpace(value.Value)
			case k.IsStep():
				sc.StepGroups = append(sc.StepGroups, p.stepGroup(k, key, value))
			case k == structure.None:
				p.errorf(key.Line, "invalid keyword %q", key.Value)
			default:
				p.errorf(key.Line, "%s: is not allowed in a scenario", key.Value)
			}
		}
		out = append(out, sc)
	}
	return out
}

func (p *parser) stepGroups(n *yaml.Node) []StepGroup {
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		p.errorf(n.Line, "Background: must hold Given, When or Then sections")
		return nil
	}

	var out []StepGroup
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		switch k := structure.ParseKeyword(key.Value); {
		case k.IsStep():
			out = append(out, p.stepGroup(k, key, value))
		case k == structure.None:
			p.errorf(key.Line, "invalid keyword %q", key.Value)
		default:
			p.errorf(key.Line, "%s: is not allowed in Background", key.Value)
		}
	}
	return out
}

func (p *parser) stepGroup(k structure.Keyword, key, value *yaml.Node) StepGroup {
	g := StepGroup{Keyword: k, Line: key.Line}
	if isNull(value) {
		return g
	}
	if value.Kind != yaml.SequenceNode {
		p.errorf(value.Line, "%s: must be a list of steps", k)
		return g
	}
	for _, item := range value.Content {
		if item.Kind != yaml.ScalarNode {
			p.errorf(item.Line, "%s step must be plain text", k)
			continue
		}
		g.Steps = append(g.Steps, Step{Text: item.Value, Line: item.Line})
	}
	return g
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// yamlError lifts the line number out of a yaml.v3 syntax error.
func yamlError(err error) ParseError {
	msg := err.Error()
	if m := yamlLinePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return ParseError{Line: line, Message: m[2]}
	}
	return ParseError{Line: 1, Message: strings.TrimPrefix(msg, "yaml: ")}
}

func filenameWithoutExt(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
