package block

import (
	"fmt"
	"weak"
)

// Source is the handle by which one block reads another. It is either Owned,
// holding the only strong reference to an anonymous block and responsible for
// stepping it, or Named, a weak reference to a block owned by a registry.
//
// The zero Source is not usable; use Owned, OwnedCell, Named or Silence.
type Source struct {
	owned *Cell
	named weak.Pointer[Cell]
	name  string
}

// Owned wraps b in a new cell exclusively owned by the returned source.
func Owned(b Block) Source {
	return Source{owned: NewCell(b)}
}

// OwnedCell returns a source owning an existing cell. The cell must not be
// owned by anything else.
func OwnedCell(c *Cell) Source {
	return Source{owned: c}
}

// Named returns a non-owning reference to a registered cell.
func Named(name string, c *Cell) Source {
	return Source{named: weak.Make(c), name: name}
}

// Silence returns an owned constant 0.
func Silence() Source {
	return Owned(NewConstant(0))
}

// Unity returns an owned constant 1.
func Unity() Source {
	return Owned(NewConstant(1))
}

func (s Source) IsOwned() bool {
	return s.owned != nil
}

// Name is the registry name of a Named source, or "" for an Owned one.
func (s Source) Name() string {
	return s.name
}

// Inner returns the referenced cell. It panics if a Named target no longer
// exists, which means the graph was built incorrectly.
func (s Source) Inner() *Cell {
	if s.owned != nil {
		return s.owned
	}
	c := s.named.Value()
	if c == nil {
		panic(fmt.Sprintf("block: named reference %q does not resolve", s.name))
	}
	return c
}

// Step steps the target of an Owned source; Named sources are inert.
func (s Source) Step() {
	if s.owned != nil {
		s.owned.Step()
	}
}

func (s Source) Mono() float32 {
	return s.Inner().Mono()
}

func (s Source) Left() float32 {
	return s.Inner().Left()
}

func (s Source) Right() float32 {
	return s.Inner().Right()
}
