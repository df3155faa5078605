// Package compiler turns patch source, in the text or the YAML format, into
// a graph.Registry ready to be played.
package compiler

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/harmonicon/harmonicon"
	"github.com/harmonicon/harmonicon/block"
	"github.com/harmonicon/harmonicon/graph"
)

// Compile compiles patch text.
func Compile(src string) (*graph.Registry, error) {
	return compileText("", src)
}

// CompileYAML compiles a patch in the YAML format.
func CompileYAML(data []byte) (*graph.Registry, error) {
	return compileYAML("", data)
}

// CompileFile reads and compiles a patch file. Files with a .yml or .yaml
// extension are read as YAML, everything else as patch text.
func CompileFile(path string) (*graph.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return compileYAML(path, data)
	}
	return compileText(path, string(data))
}

func compileText(filename, src string) (*graph.Registry, error) {
	file, err := Parse(filename, src)
	if err != nil {
		return nil, err
	}
	return build(file)
}

func compileYAML(filename string, data []byte) (*graph.Registry, error) {
	file, err := ParseYAML(filename, data)
	if err != nil {
		return nil, err
	}
	return build(file)
}

func build(file *File) (*graph.Registry, error) {
	b := graph.NewBuilder()
	if err := CompileInto(b, file); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// CompileInto adds the statements of file to b in order. A block is only
// registered once it has been built completely, so on error b holds exactly
// the statements before the failing one.
func CompileInto(b *graph.Builder, file *File) error {
	c := compiler{builder: b}
	for _, st := range file.Statements {
		switch {
		case st.Output != nil:
			if !b.SetOutput(st.Output.Name) {
				return &UnknownOutputError{Pos: st.Output.Pos, Name: st.Output.Name}
			}
		case st.Alias != nil:
			if _, ok := b.Alias(st.Alias.Target, st.Alias.Name); !ok {
				return &UnknownBlockError{Pos: st.Alias.Pos, Name: st.Alias.Target}
			}
		case st.Definition != nil:
			d := st.Definition
			blk, err := c.block(d.Pos, d.Kind, d.Init)
			if err != nil {
				return fmt.Errorf("in definition of %s: %w", d.Name, err)
			}
			b.Register(d.Name, blk)
		}
	}
	return nil
}

type compiler struct {
	builder *graph.Builder
}

// maxAmplifierPairs bounds the pair index suffix of amplifier properties.
const maxAmplifierPairs = 256

var amplifierKey = regexp.MustCompile(`^(source|src|signal|gain|mult|multiplicator)(\d*)$`)

func (c *compiler) block(pos lexer.Position, kindName string, init *Initializer) (block.Block, error) {
	kind, err := block.ParseKind(kindName)
	if err != nil {
		return nil, &UnknownBlockError{Pos: pos, Name: kindName}
	}
	if kind == block.KindConstant {
		if init.Number == nil {
			return nil, &TypeError{Pos: init.Pos, Expected: "constant initializer", Found: "block initializer"}
		}
		v, err := signalValue(init.Pos, *init.Number)
		if err != nil {
			return nil, err
		}
		return block.NewConstant(v), nil
	}
	if init.Number != nil {
		return nil, &TypeError{Pos: init.Pos, Expected: "block initializer", Found: "constant initializer"}
	}
	switch kind {
	case block.KindOscillator:
		return c.oscillator(init.Props)
	case block.KindAmplifier:
		return c.amplifier(init.Props)
	case block.KindStereo:
		return c.stereo(init.Props)
	case block.KindSequencer:
		return c.sequencer(pos, init.Props)
	}
	return nil, &UnknownBlockError{Pos: pos, Name: kindName}
}

func (c *compiler) oscillator(props []*Property) (block.Block, error) {
	o := block.NewOscillator()
	for _, p := range props {
		switch p.Key {
		case "frequency", "freq":
			src, err := c.source(p.Value)
			if err != nil {
				return nil, err
			}
			o.SetFrequency(src)
		case "waveform", "wave":
			if p.Value.Name == nil {
				return nil, &TypeError{Pos: p.Value.Pos, Expected: "waveform", Found: p.Value.describe()}
			}
			w, err := block.ParseWaveform(*p.Value.Name)
			if err != nil {
				return nil, &TypeError{Pos: p.Value.Pos, Expected: "waveform", Found: *p.Value.Name}
			}
			o.SetWaveform(w)
		default:
			return nil, unknownProperty(p, block.KindOscillator)
		}
	}
	return o, nil
}

func (c *compiler) amplifier(props []*Property) (block.Block, error) {
	a := block.NewAmplifier()
	for _, p := range props {
		m := amplifierKey.FindStringSubmatch(p.Key)
		if m == nil {
			return nil, unknownProperty(p, block.KindAmplifier)
		}
		n := 0
		if m[2] != "" {
			var err error
			if n, err = strconv.Atoi(m[2]); err != nil || n >= maxAmplifierPairs {
				return nil, unknownProperty(p, block.KindAmplifier)
			}
		}
		src, err := c.source(p.Value)
		if err != nil {
			return nil, err
		}
		switch m[1] {
		case "source", "src", "signal":
			a.SetSignal(n, src)
		default:
			a.SetGain(n, src)
		}
	}
	return a, nil
}

func (c *compiler) stereo(props []*Property) (block.Block, error) {
	s := block.NewStereo()
	for _, p := range props {
		var set func(block.Source)
		switch p.Key {
		case "left":
			set = s.SetLeft
		case "right":
			set = s.SetRight
		case "shift", "pan":
			set = s.SetShift
		default:
			return nil, unknownProperty(p, block.KindStereo)
		}
		src, err := c.source(p.Value)
		if err != nil {
			return nil, err
		}
		set(src)
	}
	return s, nil
}

func (c *compiler) sequencer(pos lexer.Position, props []*Property) (block.Block, error) {
	s := block.NewSequencer()
	for _, p := range props {
		switch p.Key {
		case "notes", "sequence":
			notes, err := noteList(p.Value)
			if err != nil {
				return nil, err
			}
			s.SetSequence(notes)
		case "bpm", "tempo":
			src, err := c.source(p.Value)
			if err != nil {
				return nil, err
			}
			s.SetBPM(src)
		case "spacing", "gap":
			src, err := c.source(p.Value)
			if err != nil {
				return nil, err
			}
			s.SetSpacing(src)
		default:
			return nil, unknownProperty(p, block.KindSequencer)
		}
	}
	if len(s.Sequence()) == 0 {
		return nil, &TypeError{Pos: pos, Expected: "notes", Found: "a sequencer without notes"}
	}
	return s, nil
}

func noteList(v *Value) ([]harmonicon.Note, error) {
	if !v.List {
		return nil, &TypeError{Pos: v.Pos, Expected: "note list", Found: v.describe()}
	}
	if len(v.Notes) == 0 {
		return nil, &TypeError{Pos: v.Pos, Expected: "note list", Found: "empty note list"}
	}
	notes := make([]harmonicon.Note, len(v.Notes))
	for i, s := range v.Notes {
		n, err := harmonicon.ParseNote(s)
		if err != nil {
			return nil, &TypeError{Pos: v.Pos, Expected: "note", Found: strconv.Quote(s)}
		}
		notes[i] = n
	}
	return notes, nil
}

// source turns a property value into a signal source: numbers and inline
// blocks become owned blocks, names become named references.
func (c *compiler) source(v *Value) (block.Source, error) {
	switch {
	case v.Number != nil:
		f, err := signalValue(v.Pos, *v.Number)
		if err != nil {
			return block.Source{}, err
		}
		return block.Owned(block.NewConstant(f)), nil
	case v.Anon != nil:
		blk, err := c.block(v.Anon.Pos, v.Anon.Kind, v.Anon.Init)
		if err != nil {
			return block.Source{}, err
		}
		return block.Owned(blk), nil
	case v.Name != nil:
		src, ok := c.builder.Reference(*v.Name)
		if !ok {
			return block.Source{}, &UnknownBlockError{Pos: v.Pos, Name: *v.Name}
		}
		return src, nil
	}
	return block.Source{}, &TypeError{Pos: v.Pos, Expected: "signal", Found: v.describe()}
}

// signalValue converts a number to a sample value. Values that are not
// finite as a float32 are rejected: they would poison every block reading
// them.
func signalValue(pos lexer.Position, f float64) (float32, error) {
	v := float32(f)
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return 0, &TypeError{Pos: pos, Expected: "finite number", Found: strconv.FormatFloat(f, 'g', -1, 64)}
	}
	return v, nil
}

func unknownProperty(p *Property, kind block.Kind) error {
	return &UnknownPropertyError{Pos: p.Pos, Property: p.Key, Block: kind.String()}
}
