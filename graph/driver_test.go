package graph_test

import (
	"testing"

	"github.com/harmonicon/harmonicon"
	"github.com/harmonicon/harmonicon/block"
	"github.com/harmonicon/harmonicon/graph"
)

func stereoGraph(left, right float32) *graph.Registry {
	b := graph.NewBuilder()
	amp := block.NewAmplifier()
	amp.SetSignal(0, block.Owned(constPanned{left, right}))
	b.Register("out", amp)
	return b.Build()
}

type constPanned struct{ l, r float32 }

func (c constPanned) Kind() block.Kind { return block.KindStereo }
func (c constPanned) Step()            {}
func (c constPanned) Mono() float32    { return (c.l + c.r) / 2 }
func (c constPanned) Left() float32    { return c.l }
func (c constPanned) Right() float32   { return c.r }

func TestDriverAlternatesChannels(t *testing.T) {
	d := graph.NewDriver(stereoGraph(0.25, -0.5))
	for i := 0; i < 10; i++ {
		if l := d.Next(); l != 0.25 {
			t.Fatalf("sample %d = %v, want left 0.25", 2*i, l)
		}
		if r := d.Next(); r != -0.5 {
			t.Fatalf("sample %d = %v, want right -0.5", 2*i+1, r)
		}
	}
}

func TestDriverTicksOncePerFrame(t *testing.T) {
	cnt := &counter{}
	b := graph.NewBuilder()
	b.Register("c", cnt)
	d := graph.NewDriver(b.Build())
	harmonicon.Record(d, 64)
	if cnt.steps != 64 {
		t.Errorf("64 frames stepped the graph %d times", cnt.steps)
	}
	buf := make(harmonicon.AudioBuffer, 16)
	d.Render(buf)
	if cnt.steps != 80 {
		t.Errorf("Render stepped the graph %d times, want 80 in total", cnt.steps)
	}
	if buf[15][0] != 80 {
		t.Errorf("last rendered frame = %v, want 80", buf[15][0])
	}
}

func TestDriverSwapsOfferedGraph(t *testing.T) {
	d := graph.NewDriver(stereoGraph(1, 1))
	d.Next()
	d.Offer(stereoGraph(2, 2))
	d.Offer(stereoGraph(3, 3)) // replaces the pending graph
	if r := d.Next(); r != 1 {
		t.Errorf("graph swapped in the middle of a frame")
	}
	if l := d.Next(); l != 3 {
		t.Errorf("left after offer = %v, want the newest graph", l)
	}
	if d.Reloads() != 1 {
		t.Errorf("Reloads = %d, want 1", d.Reloads())
	}
	if d.Registry().OutputName() != "out" {
		t.Errorf("current registry has output %q", d.Registry().OutputName())
	}
}
