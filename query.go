package aabbtree

// descend is the iterative stack-based range descent shared by most
// queries (spec.md §4.4 "Range descent"). nodePred is evaluated against
// every MBR encountered, including leaves; leafPred is evaluated only at
// level 0, after nodePred has already passed, and may re-check the same
// condition against the stored box plus any leaf-only refinement (e.g.
// self-exclusion, exact containment). emit receives the matching item id
// and returns false to stop the traversal early (bounded sinks).
type frame struct {
	level, start, end int
}

func (idx *Index[C]) descend(nodePred func(Box[C]) bool, leafPred func(id int, b Box[C]) bool, emit func(id int) bool) {
	if !idx.built {
		panic(ErrNotBuilt)
	}
	if len(idx.levels) == 0 {
		return
	}
	root := idx.levels[len(idx.levels)-1]
	stack := []frame{{level: len(idx.levels) - 1, start: root.start, end: root.end}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for pos := f.start; pos < f.end; pos++ {
			b := idx.nodes[pos]
			if !nodePred(b) {
				continue
			}
			if f.level == 0 {
				id := int(idx.ids[pos-idx.levels[0].start])
				if leafPred == nil || leafPred(id, b) {
					if !emit(id) {
						return
					}
				}
				continue
			}
			cs, ce := idx.childRange(f.level, pos)
			stack = append(stack, frame{level: f.level - 1, start: cs, end: ce})
		}
	}
}

// childRange returns the slot range in level-1 occupied by the children of
// the node at (level, pos), via integer-division indexing: no pointers or
// stored child offsets are needed because the packed tree is a complete,
// fixed-fanout layout.
func (idx *Index[C]) childRange(level, pos int) (start, end int) {
	child := idx.levels[level-1]
	start = child.start + (pos-idx.levels[level].start)*idx.NodeSize
	end = start + idx.NodeSize
	if end > child.end {
		end = child.end
	}
	return start, end
}

func appendSink(out *[]int) func(id int) bool {
	return func(id int) bool {
		*out = append(*out, id)
		return true
	}
}

func boundedSink(out *[]int, k int) func(id int) bool {
	return func(id int) bool {
		*out = append(*out, id)
		return len(*out) < k
	}
}

// Intersecting appends into results the ids of every box intersecting q,
// clearing results on entry, and returns it.
func (idx *Index[C]) Intersecting(q Box[C], results []int) []int {
	results = results[:0]
	pred := func(b Box[C]) bool { return b.Intersects(q) }
	idx.descend(pred, nil, appendSink(&results))
	return results
}

// IntersectingK is Intersecting, stopping after the first k matches.
func (idx *Index[C]) IntersectingK(q Box[C], k int, results []int) []int {
	results = results[:0]
	if k <= 0 {
		return results
	}
	pred := func(b Box[C]) bool { return b.Intersects(q) }
	idx.descend(pred, nil, boundedSink(&results, k))
	return results
}

// IntersectingID returns the ids of every box intersecting the stored box
// of id, excluding id itself.
func (idx *Index[C]) IntersectingID(id int, results []int) []int {
	results = results[:0]
	q := idx.Get(id)
	pred := func(b Box[C]) bool { return b.Intersects(q) }
	leaf := func(otherID int, b Box[C]) bool { return otherID != id && b.Intersects(q) }
	idx.descend(pred, leaf, appendSink(&results))
	return results
}

// Point returns the ids of every box containing (x, y).
func (idx *Index[C]) Point(x, y C, results []int) []int {
	results = results[:0]
	pred := func(b Box[C]) bool { return b.ContainsPoint(x, y) }
	idx.descend(pred, nil, appendSink(&results))
	return results
}

// Contain returns the ids of every box that fully contains q.
func (idx *Index[C]) Contain(q Box[C], results []int) []int {
	results = results[:0]
	pred := func(b Box[C]) bool { return b.Contains(q) }
	idx.descend(pred, nil, appendSink(&results))
	return results
}

// ContainedWithin returns the ids of every box fully contained within q.
func (idx *Index[C]) ContainedWithin(q Box[C], results []int) []int {
	results = results[:0]
	nodePred := func(b Box[C]) bool { return b.Intersects(q) }
	leafPred := func(_ int, b Box[C]) bool { return q.Contains(b) }
	idx.descend(nodePred, leafPred, appendSink(&results))
	return results
}

// Circle returns the ids of every box whose minimum distance to (cx, cy)
// is at most r.
func (idx *Index[C]) Circle(cx, cy, r C, results []int) []int {
	results = results[:0]
	r2 := float64(r) * float64(r)
	pred := func(b Box[C]) bool { return sqDist2(cx, cy, b) <= r2 }
	idx.descend(pred, nil, appendSink(&results))
	return results
}

// CirclePoints returns, in unsorted order (spec.md §9's post-0.7 choice),
// the ids of every point whose distance to (cx, cy) is at most r. Leaves
// are assumed degenerate (inserted via AddPoint).
func (idx *Index[C]) CirclePoints(cx, cy, r C, results []int) []int {
	results = results[:0]
	r2 := float64(r) * float64(r)
	nodePred := func(b Box[C]) bool { return sqDist2(cx, cy, b) <= r2 }
	leafPred := func(_ int, b Box[C]) bool {
		dx := float64(b.MinX) - float64(cx)
		dy := float64(b.MinY) - float64(cy)
		return dx*dx+dy*dy <= r2
	}
	idx.descend(nodePred, leafPred, appendSink(&results))
	return results
}
