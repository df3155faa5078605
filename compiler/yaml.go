package compiler

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
	"gopkg.in/yaml.v3"
)

// ParseYAML reads a patch in the YAML format into the same AST the text
// front-end produces:
//
//	blocks:
//	  - {name: o, type: osc, freq: 440, wave: square}
//	  - {name: base, type: const, value: 0.5}
//	  - {name: o2, alias: o}
//	output: o2
//
// Scalars are numbers or names, sequences are note lists and mappings with a
// type key are inline blocks.
func ParseYAML(filename string, data []byte) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &SyntaxError{Pos: lexer.Position{Filename: filename}, Msg: err.Error()}
	}
	p := yamlParser{filename: filename}
	file := &File{}
	if len(doc.Content) == 0 {
		return file, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, p.errorf(root, "patch must be a mapping with blocks and output")
	}
	var output *Statement
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "blocks":
			if val.Kind != yaml.SequenceNode {
				return nil, p.errorf(val, "blocks must be a list")
			}
			for _, n := range val.Content {
				st, err := p.statement(n)
				if err != nil {
					return nil, err
				}
				file.Statements = append(file.Statements, st)
			}
		case "output", "out":
			if val.Kind != yaml.ScalarNode {
				return nil, p.errorf(val, "output must be a block name")
			}
			output = &Statement{Pos: p.pos(key), Output: &Output{Pos: p.pos(val), Name: val.Value}}
		default:
			return nil, p.errorf(key, "unknown key %q", key.Value)
		}
	}
	if output != nil {
		file.Statements = append(file.Statements, output)
	}
	return file, nil
}

type yamlParser struct {
	filename string
}

func (p *yamlParser) pos(n *yaml.Node) lexer.Position {
	return lexer.Position{Filename: p.filename, Line: n.Line, Column: n.Column}
}

func (p *yamlParser) errorf(n *yaml.Node, format string, args ...any) error {
	return &SyntaxError{Pos: p.pos(n), Msg: fmt.Sprintf(format, args...)}
}

func (p *yamlParser) statement(n *yaml.Node) (*Statement, error) {
	if n.Kind != yaml.MappingNode {
		return nil, p.errorf(n, "block entry must be a mapping")
	}
	var name, alias *yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		switch n.Content[i].Value {
		case "name":
			name = n.Content[i+1]
		case "alias":
			alias = n.Content[i+1]
		}
	}
	if name == nil || name.Kind != yaml.ScalarNode {
		return nil, p.errorf(n, "block entry without a name")
	}
	pos := p.pos(n)
	if alias != nil {
		return &Statement{Pos: pos, Alias: &Alias{Pos: pos, Name: name.Value, Target: alias.Value}}, nil
	}
	kind, init, err := p.block(n, "name")
	if err != nil {
		return nil, err
	}
	return &Statement{Pos: pos, Definition: &Definition{Pos: pos, Kind: kind, Name: name.Value, Init: init}}, nil
}

// block reads the type, value and property keys of a mapping. Keys listed
// in skip are not properties.
func (p *yamlParser) block(n *yaml.Node, skip ...string) (string, *Initializer, error) {
	var kind *yaml.Node
	init := &Initializer{Pos: p.pos(n), Block: true}
keys:
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		for _, s := range skip {
			if key.Value == s {
				continue keys
			}
		}
		switch key.Value {
		case "type":
			kind = val
		case "value":
			f, ok := p.number(val)
			if !ok {
				return "", nil, &TypeError{Pos: p.pos(val), Expected: "number", Found: strconv.Quote(val.Value)}
			}
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return "", nil, &TypeError{Pos: p.pos(val), Expected: "finite number", Found: val.Value}
			}
			init.Number, init.Block = &f, false
		default:
			v, err := p.value(val)
			if err != nil {
				return "", nil, err
			}
			init.Props = append(init.Props, &Property{Pos: p.pos(key), Key: key.Value, Value: v})
		}
	}
	if kind == nil {
		return "", nil, p.errorf(n, "block without a type")
	}
	if init.Number != nil && len(init.Props) > 0 {
		return "", nil, p.errorf(n, "a block with a value takes no properties")
	}
	return kind.Value, init, nil
}

// number reads a numeric scalar, either in YAML notation (.inf, 0x10) or
// as a Go float literal.
func (p *yamlParser) number(n *yaml.Node) (float64, bool) {
	if n.Kind != yaml.ScalarNode {
		return 0, false
	}
	switch n.ShortTag() {
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return 0, false
		}
		return f, true
	}
	f, err := strconv.ParseFloat(n.Value, 64)
	return f, err == nil || errors.Is(err, strconv.ErrRange)
}

func (p *yamlParser) value(n *yaml.Node) (*Value, error) {
	v := &Value{Pos: p.pos(n)}
	switch n.Kind {
	case yaml.ScalarNode:
		if f, ok := p.number(n); ok {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, &TypeError{Pos: p.pos(n), Expected: "finite number", Found: n.Value}
			}
			v.Number = &f
		} else {
			name := n.Value
			v.Name = &name
		}
	case yaml.SequenceNode:
		v.List = true
		for _, e := range n.Content {
			if e.Kind != yaml.ScalarNode {
				return nil, &TypeError{Pos: p.pos(e), Expected: "note", Found: "nested value"}
			}
			v.Notes = append(v.Notes, e.Value)
		}
	case yaml.MappingNode:
		kind, init, err := p.block(n)
		if err != nil {
			return nil, err
		}
		v.Anon = &Anonymous{Pos: p.pos(n), Kind: kind, Init: init}
	default:
		return nil, p.errorf(n, "unsupported value")
	}
	return v, nil
}
