package graph

import (
	"embed"
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig"

	"github.com/harmonicon/harmonicon/block"
)

// Node is one line of a graph description: a block and its position in the
// tree of blocks.
type Node struct {
	Depth    int
	Names    []string // registry names, for top-level blocks
	Ref      string   // target name, for named references
	Kind     string
	Mono     float32
	State    float64
	HasState bool
}

//go:embed templates/*.tmpl
var templateFS embed.FS

var dumpTemplate = template.Must(template.New("base").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/*.tmpl"))

// Describe flattens the graph into a depth-first list of nodes, top-level
// blocks in definition order. Named references are listed but not
// descended into; their target is described under its own name.
func Describe(r *Registry) []Node {
	var nodes []Node
	var walk func(c *block.Cell, depth int)
	walk = func(c *block.Cell, depth int) {
		for _, child := range c.Children() {
			if !child.IsOwned() {
				target := child.Inner()
				nodes = append(nodes, Node{Depth: depth, Ref: child.Name(), Kind: target.Kind().String(), Mono: target.Mono()})
				continue
			}
			nodes = append(nodes, describeCell(child.Inner(), depth))
			walk(child.Inner(), depth+1)
		}
	}
	for _, c := range r.Cells() {
		n := describeCell(c, 0)
		n.Names = r.NamesOf(c)
		nodes = append(nodes, n)
		walk(c, 1)
	}
	return nodes
}

func describeCell(c *block.Cell, depth int) Node {
	n := Node{Depth: depth, Kind: c.Kind().String(), Mono: c.Mono()}
	n.State, n.HasState = c.SyncValue()
	return n
}

// Dump writes a human readable description of the graph.
func Dump(w io.Writer, r *Registry) error {
	data := struct {
		Nodes  []Node
		Output string
	}{Describe(r), r.OutputName()}
	if err := dumpTemplate.ExecuteTemplate(w, "dump.tmpl", data); err != nil {
		return fmt.Errorf("could not execute dump template: %w", err)
	}
	return nil
}
