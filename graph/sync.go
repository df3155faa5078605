package graph

import "github.com/harmonicon/harmonicon/block"

// Sync carries runtime state (oscillator phase, sequencer progress) from the
// blocks of src into the blocks of dst that have the same name, so that dst
// continues where src left off.
//
// Blocks are matched by name at the top level, and by position among their
// children below that. A pair whose kinds differ is left alone, together
// with everything below it. Children that are named references in dst are
// skipped: they are matched under their own name.
func Sync(dst, src *Registry) {
	if dst == nil || src == nil {
		return
	}
	for _, name := range dst.Names() {
		old, ok := src.Lookup(name)
		if !ok {
			continue
		}
		syncCell(dst.names[name], old)
	}
}

func syncCell(dst, src *block.Cell) {
	if dst == src || dst.Kind() != src.Kind() {
		return
	}
	if v, ok := src.SyncValue(); ok {
		dst.AcceptSync(v)
	}
	dstChildren, srcChildren := dst.Children(), src.Children()
	for i := 0; i < len(dstChildren) && i < len(srcChildren); i++ {
		if !dstChildren[i].IsOwned() {
			continue
		}
		syncCell(dstChildren[i].Inner(), srcChildren[i].Inner())
	}
}
