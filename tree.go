package aabbtree

// DefaultNodeSize is the fan-out B assumed by spec: a compile-time constant
// shared by every inner level. Index.NodeSize may be set any time before
// Build to change it; Build replaces a value below 2 with DefaultNodeSize.
const DefaultNodeSize = 16

// levelRange is the closed/open [start, end) slice of the packed nodes
// array occupied by one tree level. Level 0 holds the leaves; the last
// level holds the single root. Grounded on gogama/flatgeobuf's levelRange.
type levelRange struct {
	start, end int
}

// Index is a packed Hilbert R-tree over axis-aligned boxes with coordinate
// type C. Populate with Add/AddPoint, freeze with Build, then query. The
// zero value is not usable; use New or NewWithCapacity.
type Index[C Coord] struct {
	// NodeSize is the fan-out B. Build lays out the tree with the value it
	// holds then, and queries and Save read it again afterwards, so it must
	// not change after Build.
	NodeSize int

	staged []Box[C] // insertion-order boxes, valid only before Build
	bounds Box[C]   // root MBR, accumulated as staged boxes arrive

	nodes  []Box[C] // packed buffer: leaves (Hilbert order) then inner MBRs, level by level
	ids    []int32  // sorted position -> original item id (length numItems)
	invIDs []int32  // original item id -> sorted position
	levels []levelRange

	numItems int
	built    bool
}

// New constructs an empty, unbuilt Index.
func New[C Coord]() *Index[C] {
	return &Index[C]{NodeSize: DefaultNodeSize, bounds: invertedBox[C]()}
}

// NewWithCapacity constructs an empty Index with its staging slice
// preallocated for n items, avoiding reallocation during Add.
func NewWithCapacity[C Coord](n int) *Index[C] {
	idx := New[C]()
	idx.staged = make([]Box[C], 0, n)
	return idx
}

// Add appends a box and returns its zero-based item id. Valid only before
// Build; panics with ErrAlreadyBuilt otherwise.
func (idx *Index[C]) Add(minX, minY, maxX, maxY C) int {
	if idx.built {
		panic(ErrAlreadyBuilt)
	}
	id := len(idx.staged)
	idx.staged = append(idx.staged, Box[C]{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY})
	idx.bounds.Expand(Box[C]{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY})
	return id
}

// AddPoint appends a degenerate point box and returns its item id.
func (idx *Index[C]) AddPoint(x, y C) int {
	return idx.Add(x, y, x, y)
}

// Len returns the number of items added so far (staged, or final once built).
func (idx *Index[C]) Len() int {
	if idx.built {
		return idx.numItems
	}
	return len(idx.staged)
}

// Bounds returns the root MBR over all added items. Valid before or after
// Build.
func (idx *Index[C]) Bounds() Box[C] {
	if idx.built && len(idx.levels) > 0 {
		return idx.nodes[idx.levels[len(idx.levels)-1].start]
	}
	return idx.bounds
}

// Build performs the one-shot bulk load: Hilbert-sorts the staged boxes,
// allocates the packed buffer, and reduces inner-node MBRs bottom-up, per
// spec.md §4.3. Calling Build a second time is a documented no-op, matching
// the teacher's idempotent-by-convenience Finish.
func (idx *Index[C]) Build() {
	if idx.built {
		return
	}
	idx.built = true
	idx.numItems = len(idx.staged)
	nodeSize := idx.NodeSize
	if nodeSize < 2 {
		nodeSize = DefaultNodeSize
		idx.NodeSize = nodeSize
	}

	n := idx.numItems
	if n == 0 {
		idx.levels = nil
		idx.nodes = nil
		idx.ids = nil
		idx.invIDs = nil
		idx.staged = nil
		return
	}

	levels := levelify(n, nodeSize)
	idx.levels = levels
	total := levels[len(levels)-1].end
	idx.nodes = make([]Box[C], total)

	// Hilbert-sort the staged boxes, carrying their original ids alongside,
	// via the teacher's in-place quicksort shape (common.go's
	// sortValuesAndBoxes) generalized to a third parallel array of ids.
	keys := make([]uint32, n)
	boxes := make([]Box[C], n)
	ids := make([]int32, n)
	for i, b := range idx.staged {
		keys[i] = boxHilbertIndex(b, idx.bounds)
		boxes[i] = b
		ids[i] = int32(i)
	}
	sortKeysBoxesIDs(keys, boxes, ids, 0, n-1)

	leafStart := levels[0].start
	idx.ids = ids
	idx.invIDs = make([]int32, n)
	copy(idx.nodes[leafStart:leafStart+n], boxes)
	for pos, origID := range ids {
		idx.invIDs[origID] = int32(pos)
	}

	// Bottom-up reduction of inner-node MBRs, grounded on flatgeobuf's New.
	for l := 0; l < len(levels)-1; l++ {
		child := levels[l]
		parentStart := levels[l+1].start
		parentIdx := parentStart
		for pos := child.start; pos < child.end; {
			mbr := invertedBox[C]()
			end := pos + nodeSize
			if end > child.end {
				end = child.end
			}
			for ; pos < end; pos++ {
				mbr.Expand(idx.nodes[pos])
			}
			idx.nodes[parentIdx] = mbr
			parentIdx++
		}
	}

	idx.staged = nil
}

// sortKeysBoxesIDs is the teacher's custom Hoare-partition quicksort
// (common.go's sortValuesAndBoxes) that sorts Hilbert keys in place while
// carrying boxes alongside, generalized with a third parallel array so the
// original item id travels with its key and box instead of being recovered
// through a separate index permutation.
func sortKeysBoxesIDs[C Coord](keys []uint32, boxes []Box[C], ids []int32, left, right int) {
	if left >= right {
		return
	}

	pivot := keys[(left+right)>>1]
	i := left - 1
	j := right + 1

	for {
		i++
		for keys[i] < pivot {
			i++
		}
		j--
		for keys[j] > pivot {
			j--
		}
		if i >= j {
			break
		}
		keys[i], keys[j] = keys[j], keys[i]
		boxes[i], boxes[j] = boxes[j], boxes[i]
		ids[i], ids[j] = ids[j], ids[i]
	}

	sortKeysBoxesIDs(keys, boxes, ids, left, j)
	sortKeysBoxesIDs(keys, boxes, ids, j+1, right)
}

// levelify computes the packed-buffer level layout for n leaves and a given
// fan-out, leaf level first and root level last, following
// gogama/flatgeobuf's levelify/generateLevelBounds shape.
func levelify(n, nodeSize int) []levelRange {
	counts := []int{n}
	for counts[len(counts)-1] > 1 {
		counts = append(counts, (counts[len(counts)-1]+nodeSize-1)/nodeSize)
	}
	levels := make([]levelRange, len(counts))
	start := 0
	for i, c := range counts {
		levels[i] = levelRange{start: start, end: start + c}
		start += c
	}
	return levels
}

// Get returns the stored box for id, following the insertion-id ->
// sorted-position permutation.
func (idx *Index[C]) Get(id int) Box[C] {
	if !idx.built {
		panic(ErrNotBuilt)
	}
	pos := idx.invIDs[id]
	return idx.nodes[idx.levels[0].start+int(pos)]
}

// GetPoint returns the stored box for id as a point, assuming it was
// inserted via AddPoint (i.e. is degenerate).
func (idx *Index[C]) GetPoint(id int) (x, y C) {
	b := idx.Get(id)
	return b.MinX, b.MinY
}
