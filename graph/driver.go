package graph

import (
	"sync/atomic"

	"github.com/harmonicon/harmonicon"
)

// Driver plays a Registry. It is an endless stereo sample source: Next
// returns one channel sample per call, left first, so that audio backends
// can pull interleaved samples directly.
//
// Next, Tick and Render must be called from a single goroutine (the audio
// goroutine). Offer can be called from any goroutine; the offered graph is
// picked up at the start of the next tick.
type Driver struct {
	current  *Registry
	pending  atomic.Pointer[Registry]
	reloads  atomic.Uint64
	right    float32
	hasRight bool
}

func NewDriver(r *Registry) *Driver {
	return &Driver{current: r}
}

// Offer hands a replacement graph to the driver without blocking. Only the
// newest offered graph is kept; an older one still pending is dropped.
func (d *Driver) Offer(r *Registry) {
	d.pending.Store(r)
}

// Registry returns the graph currently playing. Only safe on the audio
// goroutine.
func (d *Driver) Registry() *Registry {
	return d.current
}

// Reloads returns how many replacement graphs have been swapped in.
func (d *Driver) Reloads() uint64 {
	return d.reloads.Load()
}

// Tick swaps in a pending graph if there is one, advances the graph by one
// sample and returns the output frame.
func (d *Driver) Tick() (left, right float32) {
	if next := d.pending.Swap(nil); next != nil {
		Sync(next, d.current)
		d.current = next
		d.reloads.Add(1)
	}
	d.current.Step()
	out := d.current.Output()
	return out.Left(), out.Right()
}

// Next implements harmonicon.Signal.
func (d *Driver) Next() float32 {
	if d.hasRight {
		d.hasRight = false
		return d.right
	}
	left, right := d.Tick()
	d.right, d.hasRight = right, true
	return left
}

// Render fills the buffer with frames. A right sample left buffered by a
// previous call to Next is discarded, so the buffer always starts on a fresh
// frame.
func (d *Driver) Render(buffer harmonicon.AudioBuffer) {
	d.hasRight = false
	for i := range buffer {
		buffer[i][0], buffer[i][1] = d.Tick()
	}
}
