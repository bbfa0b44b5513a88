package aabbtree

import (
	"fmt"
	"io"
	"strings"
)

// DumpString returns the result of Dump as a string. Grounded on
// gaissmai/bart's dumpString/dump pair: useful during development and
// debugging, not part of the query surface.
func (idx *Index[C]) DumpString() string {
	w := new(strings.Builder)
	idx.Dump(w)
	return w.String()
}

// Dump writes a per-level summary of the packed buffer to w: level index,
// slot range, and node count, root level last.
func (idx *Index[C]) Dump(w io.Writer) {
	if !idx.built {
		panic(ErrNotBuilt)
	}
	if len(idx.levels) == 0 {
		fmt.Fprintln(w, "empty index")
		return
	}
	for l, lr := range idx.levels {
		kind := "inner"
		if l == 0 {
			kind = "leaf"
		}
		if l == len(idx.levels)-1 {
			kind = "root"
		}
		fmt.Fprintf(w, "[%-5s] level %d slots [%d,%d) count %d\n", kind, l, lr.start, lr.end, lr.end-lr.start)
	}
}
