package aabbtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptyIndex(t *testing.T) {
	testEmptyIndex[float64](t)
	testEmptyIndex[int32](t)
}

func testEmptyIndex[C Coord](t *testing.T) {
	idx := New[C]()
	idx.Build()
	require.Equal(t, 0, idx.Len())
	require.Empty(t, idx.Intersecting(Box[C]{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}, nil))
	require.Empty(t, idx.Point(0, 0, nil))
	require.Empty(t, idx.NearestK(0, 0, 5, nil))
	require.Empty(t, idx.Circle(0, 0, 5, nil))
}

func TestSingleItem(t *testing.T) {
	idx := New[float64]()
	id := idx.Add(0, 0, 1, 1)
	require.Equal(t, 0, id)
	idx.Build()

	require.Equal(t, 1, idx.Len())
	require.Equal(t, []int{0}, idx.Intersecting(Box[float64]{MinX: 0.5, MinY: 0.5, MaxX: 2, MaxY: 2}, nil))
	require.Empty(t, idx.Intersecting(Box[float64]{MinX: 5, MinY: 5, MaxX: 6, MaxY: 6}, nil))
	require.Equal(t, Box[float64]{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}, idx.Get(0))
}

func TestBuildIsNoOpSecondTime(t *testing.T) {
	idx := New[float64]()
	idx.Add(0, 0, 1, 1)
	idx.Add(2, 2, 3, 3)
	idx.Build()
	before := append([]Box[float64]{}, idx.nodes...)
	idx.Build()
	require.Equal(t, before, idx.nodes)
}

func TestIdempotentBuild(t *testing.T) {
	mk := func() *Index[float64] {
		idx := New[float64]()
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 500; i++ {
			x, y := rng.Float64()*1000, rng.Float64()*1000
			idx.Add(x, y, x+rng.Float64()*5, y+rng.Float64()*5)
		}
		idx.Build()
		return idx
	}
	a := mk()
	b := mk()
	require.Equal(t, a.nodes, b.nodes)
	require.Equal(t, a.ids, b.ids)
}

func TestGetIsBijection(t *testing.T) {
	idx := New[float64]()
	n := 300
	boxes := make([]Box[float64], n)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < n; i++ {
		x, y := rng.Float64()*100, rng.Float64()*100
		b := Box[float64]{MinX: x, MinY: y, MaxX: x + 1, MaxY: y + 1}
		boxes[i] = b
		idx.Add(b.MinX, b.MinY, b.MaxX, b.MaxY)
	}
	idx.Build()
	for i := 0; i < n; i++ {
		require.Equal(t, boxes[i], idx.Get(i))
	}
}

func TestAllBoxesIdentical(t *testing.T) {
	idx := New[float64]()
	for i := 0; i < 50; i++ {
		idx.Add(1, 1, 2, 2)
	}
	idx.Build()
	got := idx.Intersecting(Box[float64]{MinX: 0, MinY: 0, MaxX: 3, MaxY: 3}, nil)
	require.Len(t, got, 50)
}

func TestInnerNodeMBRsAreTightUnion(t *testing.T) {
	idx := New[float64]()
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 400; i++ {
		x, y := rng.Float64()*200, rng.Float64()*200
		idx.Add(x, y, x+rng.Float64()*4, y+rng.Float64()*4)
	}
	idx.Build()
	for l := 1; l < len(idx.levels); l++ {
		lvl := idx.levels[l]
		for pos := lvl.start; pos < lvl.end; pos++ {
			cs, ce := idx.childRange(l, pos)
			want := invertedBox[float64]()
			for c := cs; c < ce; c++ {
				want.Expand(idx.nodes[c])
			}
			require.Equal(t, want, idx.nodes[pos])
		}
	}
}

func TestAddAfterBuildPanics(t *testing.T) {
	idx := New[float64]()
	idx.Add(0, 0, 1, 1)
	idx.Build()
	require.PanicsWithValue(t, ErrAlreadyBuilt, func() { idx.Add(1, 1, 2, 2) })
}

func TestQueryBeforeBuildPanics(t *testing.T) {
	idx := New[float64]()
	idx.Add(0, 0, 1, 1)
	require.PanicsWithValue(t, ErrNotBuilt, func() {
		idx.Intersecting(Box[float64]{MaxX: 1, MaxY: 1}, nil)
	})
}
