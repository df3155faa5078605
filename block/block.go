// Package block implements the signal blocks of a harmonicon graph: the Block
// interface, the lock-guarded Cell every block lives in, the Source handles
// by which blocks read each other, and the five block variants.
//
// A block is stepped exactly once per sample. Blocks held by a Registry are
// stepped by the registry; blocks behind an Owned source are stepped by the
// block that owns the source; Named sources are never stepped.
package block

import (
	"fmt"
	"sync"
)

type (
	// Block is a unit producing one signal value per sample.
	Block interface {
		Kind() Kind
		// Step advances the block by one sample.
		Step()
		// Mono is the current output value of the block.
		Mono() float32
	}

	// StereoOutput is implemented by blocks whose left and right channels
	// differ from Mono.
	StereoOutput interface {
		Left() float32
		Right() float32
	}

	// Parent is implemented by blocks that read other blocks. Children are
	// returned in declaration order.
	Parent interface {
		Children() []Source
	}

	// Syncer is implemented by blocks carrying continuous runtime state
	// that should survive a hot reload, e.g. oscillator phase.
	Syncer interface {
		SyncValue() float64
		SetSyncValue(v float64)
	}

	// Kind identifies the variant of a block. Blocks are only synced with
	// peers of the same kind.
	Kind int
)

const (
	KindConstant Kind = iota
	KindOscillator
	KindAmplifier
	KindStereo
	KindSequencer
)

var kindNames = [...]string{
	KindConstant:   "constant",
	KindOscillator: "oscillator",
	KindAmplifier:  "amplifier",
	KindStereo:     "stereo",
	KindSequencer:  "sequencer",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind parses a block type name, accepting the usual abbreviations.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "constant", "const":
		return KindConstant, nil
	case "oscillator", "osc":
		return KindOscillator, nil
	case "amplifier", "amp":
		return KindAmplifier, nil
	case "stereo":
		return KindStereo, nil
	case "sequencer", "seq":
		return KindSequencer, nil
	}
	return 0, fmt.Errorf("unknown block type %q", s)
}

// Cell holds a block behind a mutex. Every accessor holds the lock for the
// duration of that single call only; no lock is held across two calls.
type Cell struct {
	mu    sync.Mutex
	block Block
}

func NewCell(b Block) *Cell {
	return &Cell{block: b}
}

func (c *Cell) Kind() Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.block.Kind()
}

func (c *Cell) Step() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.block.Step()
}

func (c *Cell) Mono() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.block.Mono()
}

func (c *Cell) Left() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.block.(StereoOutput); ok {
		return s.Left()
	}
	return c.block.Mono()
}

func (c *Cell) Right() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.block.(StereoOutput); ok {
		return s.Right()
	}
	return c.block.Mono()
}

// Children returns a copy of the block's child sources, or nil.
func (c *Cell) Children() []Source {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.block.(Parent); ok {
		return p.Children()
	}
	return nil
}

// SyncValue returns the block's sync value; ok is false for blocks without
// one.
func (c *Cell) SyncValue() (v float64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.block.(Syncer); ok {
		return s.SyncValue(), true
	}
	return 0, false
}

// AcceptSync overwrites the block's sync value. It is a no-op for blocks
// without one.
func (c *Cell) AcceptSync(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.block.(Syncer); ok {
		s.SetSyncValue(v)
	}
}

// With calls f with the block while holding the lock.
func (c *Cell) With(f func(b Block)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f(c.block)
}
