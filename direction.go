package aabbtree

import (
	"container/heap"
	"math"
	"sort"
)

// unitDirection returns (dx, dy) normalized to a unit vector, so that dist
// measures actual travel distance along that heading rather than a multiple
// of the raw (dx, dy) magnitude. The zero vector maps to (0, 0): the rect
// never moves, regardless of dist.
func unitDirection[C Coord](dx, dy C) (ux, uy float64) {
	fdx, fdy := float64(dx), float64(dy)
	length := math.Hypot(fdx, fdy)
	if length == 0 {
		return 0, 0
	}
	return fdx / length, fdy / length
}

// sweptRect returns the axis-aligned hull of rect and rect translated by
// dist units along the unit vector of (dx, dy) — the Minkowski sum of rect
// and the directed segment, per spec.md §4.5's swept-rectangle definition.
func sweptRect[C Coord](rect Box[C], dx, dy, dist C) Box[C] {
	ux, uy := unitDirection(dx, dy)
	offX := coordFromFloat64[C](ux * float64(dist))
	offY := coordFromFloat64[C](uy * float64(dist))
	shift := Box[C]{
		MinX: rect.MinX + offX,
		MinY: rect.MinY + offY,
		MaxX: rect.MaxX + offX,
		MaxY: rect.MaxY + offY,
	}
	swept := rect
	swept.Expand(shift)
	return swept
}

// InDirection returns the ids of every box touched by rect as it sweeps
// along (dx, dy) for up to dist units, per spec.md's directional query.
func (idx *Index[C]) InDirection(rect Box[C], dx, dy, dist C, results []int) []int {
	results = results[:0]
	swept := sweptRect(rect, dx, dy, dist)
	pred := func(b Box[C]) bool { return b.Intersects(swept) }
	idx.descend(pred, nil, appendSink(&results))
	return results
}

// axisTouchInterval returns the closed interval of t for which a segment
// of length rHi-rLo, starting at rLo and moving at speed d, overlaps the
// fixed interval [bLo, bHi]. ok is false only when d == 0 and the segment
// never overlaps the target at any t.
func axisTouchInterval(d, rLo, rHi, bLo, bHi float64) (lo, hi float64, ok bool) {
	if d == 0 {
		if rHi < bLo || bHi < rLo {
			return 0, 0, false
		}
		return math.Inf(-1), math.Inf(1), true
	}
	t1 := (bLo - rHi) / d
	t2 := (bHi - rLo) / d
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return t1, t2, true
}

// earliestTouch returns the smallest t in [0, dist] at which rect,
// translated by t units along the unit vector of (dx, dy), first intersects
// b, or (0, false) if it never does within that window. This is exact for
// any box, including an inner node's MBR: since a descendant's MBR is
// contained in its ancestor's, the descendant's earliest-touch time is never
// smaller, so this doubles as a valid lower bound for best-first pruning.
func earliestTouch[C Coord](rect Box[C], dx, dy, dist C, b Box[C]) (float64, bool) {
	ux, uy := unitDirection(dx, dy)
	loX, hiX, okX := axisTouchInterval(ux, float64(rect.MinX), float64(rect.MaxX), float64(b.MinX), float64(b.MaxX))
	if !okX {
		return 0, false
	}
	loY, hiY, okY := axisTouchInterval(uy, float64(rect.MinY), float64(rect.MaxY), float64(b.MinY), float64(b.MaxY))
	if !okY {
		return 0, false
	}
	lo := math.Max(math.Max(loX, loY), 0)
	hi := math.Min(math.Min(hiX, hiY), float64(dist))
	if lo > hi {
		return 0, false
	}
	return lo, true
}

type sweepFrontierItem struct {
	tLB        float64
	level, pos int
}

type sweepFrontierHeap []sweepFrontierItem

func (h sweepFrontierHeap) Len() int            { return len(h) }
func (h sweepFrontierHeap) Less(i, j int) bool  { return h[i].tLB < h[j].tLB }
func (h sweepFrontierHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *sweepFrontierHeap) Push(x interface{}) { *h = append(*h, x.(sweepFrontierItem)) }
func (h *sweepFrontierHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

type sweepCandidate struct {
	id int
	t  float64
}

type sweepResultMaxHeap []sweepCandidate

func (h sweepResultMaxHeap) Len() int            { return len(h) }
func (h sweepResultMaxHeap) Less(i, j int) bool  { return h[i].t > h[j].t }
func (h sweepResultMaxHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *sweepResultMaxHeap) Push(x interface{}) { *h = append(*h, x.(sweepCandidate)) }
func (h *sweepResultMaxHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// InDirectionK is InDirection bounded to the k candidates with the smallest
// parametric touch time t, sorted ascending by t (spec.md §4.5/§5).
func (idx *Index[C]) InDirectionK(rect Box[C], dx, dy, dist C, k int, results []int) []int {
	results = results[:0]
	if !idx.built {
		panic(ErrNotBuilt)
	}
	if k <= 0 || len(idx.levels) == 0 {
		return results
	}

	root := idx.levels[len(idx.levels)-1]
	frontier := &sweepFrontierHeap{}
	heap.Init(frontier)
	for pos := root.start; pos < root.end; pos++ {
		if t, ok := earliestTouch(rect, dx, dy, dist, idx.nodes[pos]); ok {
			heap.Push(frontier, sweepFrontierItem{tLB: t, level: len(idx.levels) - 1, pos: pos})
		}
	}

	best := &sweepResultMaxHeap{}
	for frontier.Len() > 0 {
		item := heap.Pop(frontier).(sweepFrontierItem)
		if best.Len() == k && item.tLB >= (*best)[0].t {
			continue
		}
		if item.level == 0 {
			id := int(idx.ids[item.pos-idx.levels[0].start])
			if best.Len() < k {
				heap.Push(best, sweepCandidate{id: id, t: item.tLB})
			} else if item.tLB < (*best)[0].t {
				heap.Pop(best)
				heap.Push(best, sweepCandidate{id: id, t: item.tLB})
			}
			continue
		}
		cs, ce := idx.childRange(item.level, item.pos)
		for pos := cs; pos < ce; pos++ {
			if t, ok := earliestTouch(rect, dx, dy, dist, idx.nodes[pos]); ok {
				heap.Push(frontier, sweepFrontierItem{tLB: t, level: item.level - 1, pos: pos})
			}
		}
	}

	cands := make([]sweepCandidate, len(*best))
	copy(cands, *best)
	sort.Slice(cands, func(i, j int) bool { return cands[i].t < cands[j].t })
	for _, c := range cands {
		results = append(results, c.id)
	}
	return results
}
