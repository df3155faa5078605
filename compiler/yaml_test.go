package compiler_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/harmonicon/harmonicon"
	"github.com/harmonicon/harmonicon/compiler"
	"github.com/harmonicon/harmonicon/graph"
)

const yamlPatch = `blocks:
  - {name: base, type: const, value: 220}
  - {name: lfo, type: osc, freq: 2, wave: tri}
  - {name: o, type: osc, freq: base, wave: square}
  - name: mix
    type: amp
    src: o
    gain: lfo
    src1: {type: osc, freq: 110}
  - {name: o2, alias: o}
  - {name: s, type: seq, notes: [C4, "-", A4], bpm: 240}
output: mix
`

func TestYAMLMatchesText(t *testing.T) {
	fromText, err := compiler.Compile(patch)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	fromYAML, err := compiler.CompileYAML([]byte(yamlPatch))
	if err != nil {
		t.Fatalf("CompileYAML failed: %v", err)
	}
	var a, b bytes.Buffer
	if err := graph.Dump(&a, fromText); err != nil {
		t.Fatal(err)
	}
	if err := graph.Dump(&b, fromYAML); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Errorf("graphs differ:\ntext:\n%s\nyaml:\n%s", a.String(), b.String())
	}
	bufA := make(harmonicon.AudioBuffer, 4410)
	bufB := make(harmonicon.AudioBuffer, 4410)
	graph.NewDriver(fromText).Render(bufA)
	graph.NewDriver(fromYAML).Render(bufB)
	for i := range bufA {
		if bufA[i] != bufB[i] {
			t.Fatalf("frame %d differs: %v != %v", i, bufA[i], bufB[i])
		}
	}
}

func TestYAMLErrors(t *testing.T) {
	for _, c := range []struct {
		name, src string
		check func(error) bool
	}{
		{"not yaml", "blocks: [", isSyntax},
		{"no name", "blocks:\n  - {type: osc}\n", isSyntax},
		{"no type", "blocks:\n  - {name: o, freq: 1}\n", isSyntax},
		{"unknown key", "voices: 3\n", isSyntax},
		{"bad value", "blocks:\n  - {name: c, type: const, value: loud}\n", isType},
		{"unknown property", "blocks:\n  - {name: o, type: osc, frq: 1}\n", func(err error) bool {
			var perr *compiler.UnknownPropertyError
			return errors.As(err, &perr) && perr.Property == "frq" && perr.Block == "oscillator"
		}},
		{"unknown output", "blocks:\n  - {name: o, type: osc}\noutput: p\n", func(err error) bool {
			var oerr *compiler.UnknownOutputError
			return errors.As(err, &oerr) && oerr.Name == "p"
		}},
	} {
		_, err := compiler.CompileYAML([]byte(c.src))
		if err == nil || !c.check(err) {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
	}
}

func TestYAMLPositions(t *testing.T) {
	_, err := compiler.CompileYAML([]byte("blocks:\n  - {name: a, type: const, value: 1}\n  - {name: o, type: osc, frq: 1}\n"))
	var perr *compiler.UnknownPropertyError
	if !errors.As(err, &perr) {
		t.Fatalf("expected an UnknownPropertyError, got %v", err)
	}
	if perr.Pos.Line != 3 {
		t.Errorf("error reported on line %d, want 3", perr.Pos.Line)
	}
}

func isSyntax(err error) bool {
	var serr *compiler.SyntaxError
	return errors.As(err, &serr)
}

func isType(err error) bool {
	var terr *compiler.TypeError
	return errors.As(err, &terr)
}

func TestYAMLRejectsNonFinite(t *testing.T) {
	for _, v := range []string{"NaN", ".nan", "Inf", "-Infinity", ".inf", "-.Inf"} {
		for _, src := range []string{
			"blocks:\n  - {name: s, type: seq, notes: [A4, C4, E4], bpm: " + v + "}\n",
			"blocks:\n  - {name: c, type: const, value: " + v + "}\n",
		} {
			_, err := compiler.CompileYAML([]byte(src))
			var terr *compiler.TypeError
			if !errors.As(err, &terr) || terr.Expected != "finite number" {
				t.Errorf("%q: expected a finite number TypeError, got %v", src, err)
			}
		}
	}
}

func TestYAMLNumberNotations(t *testing.T) {
	r, err := compiler.CompileYAML([]byte("blocks:\n  - {name: o, type: osc, freq: 0x10}\n  - {name: c, type: const, value: \"0.5\"}\n"))
	if err != nil {
		t.Fatalf("CompileYAML failed: %v", err)
	}
	o, _ := r.Lookup("o")
	if f := o.Children()[0].Mono(); f != 16 {
		t.Errorf("freq = %v, want 16", f)
	}
	if v := r.Output().Mono(); v != 0.5 {
		t.Errorf("output = %v, want 0.5", v)
	}
}
