package block_test

import (
	"testing"

	"github.com/harmonicon/harmonicon/block"
)

// counter counts its own steps.
type counter struct {
	steps int
}

func (c *counter) Kind() block.Kind { return block.KindConstant }
func (c *counter) Step()            { c.steps++ }
func (c *counter) Mono() float32    { return float32(c.steps) }

func TestParseKind(t *testing.T) {
	for _, tc := range []struct {
		in   string
		kind block.Kind
	}{
		{"const", block.KindConstant},
		{"constant", block.KindConstant},
		{"osc", block.KindOscillator},
		{"amp", block.KindAmplifier},
		{"stereo", block.KindStereo},
		{"seq", block.KindSequencer},
		{"sequencer", block.KindSequencer},
	} {
		kind, err := block.ParseKind(tc.in)
		if err != nil {
			t.Fatalf("ParseKind(%q) failed: %v", tc.in, err)
		}
		if kind != tc.kind {
			t.Errorf("ParseKind(%q) = %v, want %v", tc.in, kind, tc.kind)
		}
	}
	if _, err := block.ParseKind("filter"); err == nil {
		t.Errorf("ParseKind accepted an unknown block type")
	}
}

func TestCellDefaultsToMono(t *testing.T) {
	c := block.NewCell(block.NewConstant(0.25))
	if l, r := c.Left(), c.Right(); l != 0.25 || r != 0.25 {
		t.Errorf("constant channels = (%v, %v), want (0.25, 0.25)", l, r)
	}
	if children := c.Children(); children != nil {
		t.Errorf("constant has children: %v", children)
	}
	if _, ok := c.SyncValue(); ok {
		t.Errorf("constant reported a sync value")
	}
	c.AcceptSync(3) // no-op
	if c.Mono() != 0.25 {
		t.Errorf("AcceptSync changed a constant to %v", c.Mono())
	}
}

func TestOwnedSourceSteps(t *testing.T) {
	cnt := &counter{}
	src := block.Owned(cnt)
	src.Step()
	src.Step()
	if cnt.steps != 2 {
		t.Errorf("owned source stepped %d times, want 2", cnt.steps)
	}
	if !src.IsOwned() || src.Name() != "" {
		t.Errorf("owned source reports IsOwned=%v Name=%q", src.IsOwned(), src.Name())
	}
}

func TestNamedSourceIsInert(t *testing.T) {
	cnt := &counter{}
	cell := block.NewCell(cnt)
	src := block.Named("c", cell)
	src.Step()
	if cnt.steps != 0 {
		t.Errorf("named source stepped its target")
	}
	cell.Step()
	if src.Mono() != 1 {
		t.Errorf("named source reads %v, want 1", src.Mono())
	}
	if src.Inner() != cell {
		t.Errorf("named source does not resolve to its cell")
	}
	if src.IsOwned() || src.Name() != "c" {
		t.Errorf("named source reports IsOwned=%v Name=%q", src.IsOwned(), src.Name())
	}
}

func TestZeroSourcePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("resolving an unset source did not panic")
		}
	}()
	var src block.Source
	src.Inner()
}
