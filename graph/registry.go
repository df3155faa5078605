// Package graph holds compiled block graphs and plays them: Registry is an
// immutable graph, Builder constructs one, Driver steps it once per sample
// and Sync carries runtime state from an old graph into its replacement.
package graph

import (
	"sort"

	"github.com/harmonicon/harmonicon/block"
)

// Registry maps names to the top-level blocks of a graph and designates the
// block whose output is played. It is immutable once built.
type Registry struct {
	names      map[string]*block.Cell
	cells      []*block.Cell // distinct top-level cells, in definition order
	output     *block.Cell
	outputName string
}

// Lookup returns the cell registered under name.
func (r *Registry) Lookup(name string) (*block.Cell, bool) {
	c, ok := r.names[name]
	return c, ok
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	ret := make([]string, 0, len(r.names))
	for name := range r.names {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// NamesOf returns the sorted names under which c is registered.
func (r *Registry) NamesOf(c *block.Cell) []string {
	var ret []string
	for name, cell := range r.names {
		if cell == c {
			ret = append(ret, name)
		}
	}
	sort.Strings(ret)
	return ret
}

// Cells returns the top-level cells in definition order. A cell registered
// under several names appears once.
func (r *Registry) Cells() []*block.Cell {
	return r.cells
}

func (r *Registry) Output() *block.Cell {
	return r.output
}

// OutputName is the name the output was selected by, or "" for an empty
// graph.
func (r *Registry) OutputName() string {
	return r.outputName
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	return len(r.names)
}

// Step advances every top-level cell by one sample. Owned children are
// stepped by their parents and named references are not stepped at all, so
// every block in the graph advances exactly once.
func (r *Registry) Step() {
	for _, c := range r.cells {
		c.Step()
	}
}

// Builder assembles a Registry from definitions given in order. Because a
// name can only be referenced once it has been registered, the finished
// graph is acyclic and definition order is a valid topological order.
type Builder struct {
	reg      Registry
	last     string
	explicit bool
}

func NewBuilder() *Builder {
	return &Builder{reg: Registry{names: map[string]*block.Cell{}}}
}

// Register adds b as a top-level block under name and returns its cell. A
// previous block under the same name stays in the graph, and keeps being
// stepped, for the references that already point to it.
func (b *Builder) Register(name string, blk block.Block) *block.Cell {
	c := block.NewCell(blk)
	b.reg.names[name] = c
	b.reg.cells = append(b.reg.cells, c)
	b.last = name
	return c
}

// Alias registers the block named existing under a second name.
func (b *Builder) Alias(existing, alias string) (*block.Cell, bool) {
	c, ok := b.reg.names[existing]
	if !ok {
		return nil, false
	}
	b.reg.names[alias] = c
	b.last = alias
	return c, true
}

// Lookup returns the cell registered under name so far.
func (b *Builder) Lookup(name string) (*block.Cell, bool) {
	c, ok := b.reg.names[name]
	return c, ok
}

// Reference returns a named source for a registered block.
func (b *Builder) Reference(name string) (block.Source, bool) {
	c, ok := b.reg.names[name]
	if !ok {
		return block.Source{}, false
	}
	return block.Named(name, c), true
}

// SetOutput selects the output block by name. Without a call to SetOutput,
// the last defined name is the output.
func (b *Builder) SetOutput(name string) bool {
	c, ok := b.reg.names[name]
	if !ok {
		return false
	}
	b.reg.output, b.reg.outputName = c, name
	b.explicit = true
	return true
}

// Build finishes the graph. An empty graph outputs silence.
func (b *Builder) Build() *Registry {
	reg := b.reg
	if !b.explicit {
		reg.output, reg.outputName = reg.names[b.last], b.last
	}
	if reg.output == nil {
		reg.output, reg.outputName = block.NewCell(block.NewConstant(0)), ""
	}
	b.reg = Registry{names: map[string]*block.Cell{}}
	b.last, b.explicit = "", false
	return &reg
}
