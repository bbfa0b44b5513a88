package aabbtree

import (
	"container/heap"
	"sort"
)

// frontierItem is a pending (level, slot) entry in the nearest-k best-first
// traversal, keyed by the lower bound of point-to-MBR squared distance.
type frontierItem struct {
	distLB     float64
	level, pos int
}

type frontierHeap []frontierItem

func (h frontierHeap) Len() int            { return len(h) }
func (h frontierHeap) Less(i, j int) bool  { return h[i].distLB < h[j].distLB }
func (h frontierHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *frontierHeap) Push(x interface{}) { *h = append(*h, x.(frontierItem)) }
func (h *frontierHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// candidate is a leaf accepted into the bounded best-k result heap.
type candidate struct {
	id   int
	dist float64
}

// resultMaxHeap is a max-heap (by distance) of size at most k: the current
// k-th nearest candidate sits at the top and is evicted first.
type resultMaxHeap []candidate

func (h resultMaxHeap) Len() int            { return len(h) }
func (h resultMaxHeap) Less(i, j int) bool  { return h[i].dist > h[j].dist }
func (h resultMaxHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *resultMaxHeap) Push(x interface{}) { *h = append(*h, x.(candidate)) }
func (h *resultMaxHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// nearestK runs the best-first traversal of spec.md §4.4 "Nearest-k
// descent": a min-heap frontier keyed by distance lower bound feeds a
// bounded max-heap of the k best candidates seen so far, pruning any popped
// frontier entry whose lower bound is no longer strictly better than the
// current k-th best.
func (idx *Index[C]) nearestK(px, py C, k int, results []int) []int {
	results = results[:0]
	if !idx.built {
		panic(ErrNotBuilt)
	}
	if k <= 0 || len(idx.levels) == 0 {
		return results
	}

	root := idx.levels[len(idx.levels)-1]
	frontier := &frontierHeap{}
	heap.Init(frontier)
	for pos := root.start; pos < root.end; pos++ {
		b := idx.nodes[pos]
		heap.Push(frontier, frontierItem{distLB: sqDist2(px, py, b), level: len(idx.levels) - 1, pos: pos})
	}

	best := &resultMaxHeap{}
	for frontier.Len() > 0 {
		item := heap.Pop(frontier).(frontierItem)
		if best.Len() == k && item.distLB >= (*best)[0].dist {
			continue // pruned: cannot beat the current k-th best
		}
		if item.level == 0 {
			b := idx.nodes[item.pos]
			d := sqDist2(px, py, b)
			id := int(idx.ids[item.pos-idx.levels[0].start])
			if best.Len() < k {
				heap.Push(best, candidate{id: id, dist: d})
			} else if d < (*best)[0].dist {
				heap.Pop(best)
				heap.Push(best, candidate{id: id, dist: d})
			}
			continue
		}
		cs, ce := idx.childRange(item.level, item.pos)
		for pos := cs; pos < ce; pos++ {
			b := idx.nodes[pos]
			heap.Push(frontier, frontierItem{distLB: sqDist2(px, py, b), level: item.level - 1, pos: pos})
		}
	}

	cands := make([]candidate, len(*best))
	copy(cands, *best)
	sort.Slice(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })
	for _, c := range cands {
		results = append(results, c.id)
	}
	return results
}

// NearestK returns the up-to-k ids whose stored boxes are closest to
// (px, py), sorted by ascending distance, clearing results on entry.
func (idx *Index[C]) NearestK(px, py C, k int, results []int) []int {
	return idx.nearestK(px, py, k, results)
}

// NearestKPoints is NearestK specialized for an index built entirely from
// AddPoint leaves: distances are point-to-point rather than point-to-box,
// which happens to be the same computation as NearestK once leaves are
// degenerate, so it shares the same traversal.
func (idx *Index[C]) NearestKPoints(px, py C, k int, results []int) []int {
	return idx.nearestK(px, py, k, results)
}
