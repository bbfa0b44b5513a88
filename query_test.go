package aabbtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntersectingScenario1(t *testing.T) {
	idx := New[float64]()
	idx.Add(0, 0, 1, 1)
	idx.Add(0.5, 0.5, 1.5, 1.5)
	idx.Add(2, 2, 3, 3)
	idx.Build()

	got := idx.Intersecting(Box[float64]{MinX: 0.7, MinY: 0.7, MaxX: 1.3, MaxY: 1.3}, nil)
	require.ElementsMatch(t, []int{0, 1}, got)
}

func TestContainScenario4(t *testing.T) {
	idx := New[int32]()
	idx.Add(0, 0, 10, 10)
	idx.Add(20, 20, 30, 30)
	idx.Add(5, 5, 25, 25)
	idx.Build()

	within := idx.ContainedWithin(Box[int32]{MinX: 0, MinY: 0, MaxX: 40, MaxY: 40}, nil)
	require.ElementsMatch(t, []int{0, 1, 2}, within)

	contain := idx.Contain(Box[int32]{MinX: 7, MinY: 7, MaxX: 8, MaxY: 8}, nil)
	require.ElementsMatch(t, []int{0, 2}, contain)
}

func TestIntersectingIDSelfExclusion(t *testing.T) {
	idx := New[float64]()
	idx.Add(0, 0, 1, 1)
	idx.Build()
	require.Empty(t, idx.IntersectingID(0, nil))
}

func TestCirclePointsScenario2(t *testing.T) {
	idx := New[float64]()
	idx.AddPoint(0, 0)
	idx.AddPoint(1, 1)
	idx.AddPoint(2, 2)
	idx.AddPoint(5, 5)
	idx.Build()

	got := idx.CirclePoints(0, 0, 2.5, nil)
	require.ElementsMatch(t, []int{0, 1}, got)
}

func TestIntersectingKIsSubsetAndBounded(t *testing.T) {
	idx := New[float64]()
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		x, y := rng.Float64()*50, rng.Float64()*50
		idx.Add(x, y, x+2, y+2)
	}
	idx.Build()

	q := Box[float64]{MinX: 10, MinY: 10, MaxX: 40, MaxY: 40}
	full := idx.Intersecting(q, nil)
	fullSet := map[int]bool{}
	for _, id := range full {
		fullSet[id] = true
	}

	for _, k := range []int{0, 1, 3, 10, 1000} {
		got := idx.IntersectingK(q, k, nil)
		require.LessOrEqual(t, len(got), min(k, len(full)))
		if k > 0 {
			require.Equal(t, min(k, len(full)), len(got))
		}
		for _, id := range got {
			require.True(t, fullSet[id])
		}
	}
}

func TestQuerySoundnessAndCompleteness(t *testing.T) {
	idx := New[float64]()
	rng := rand.New(rand.NewSource(99))
	n := 600
	boxes := make([]Box[float64], n)
	for i := 0; i < n; i++ {
		x, y := rng.Float64()*300, rng.Float64()*300
		b := Box[float64]{MinX: x, MinY: y, MaxX: x + rng.Float64()*6, MaxY: y + rng.Float64()*6}
		boxes[i] = b
		idx.Add(b.MinX, b.MinY, b.MaxX, b.MaxY)
	}
	idx.Build()

	for trial := 0; trial < 50; trial++ {
		x, y := rng.Float64()*300, rng.Float64()*300
		q := Box[float64]{MinX: x, MinY: y, MaxX: x + rng.Float64()*10, MaxY: y + rng.Float64()*10}

		want := map[int]bool{}
		for i, b := range boxes {
			if b.Intersects(q) {
				want[i] = true
			}
		}
		got := idx.Intersecting(q, nil)
		gotSet := map[int]bool{}
		for _, id := range got {
			gotSet[id] = true
		}
		require.Equal(t, want, gotSet)
	}
}

func TestPointQuery(t *testing.T) {
	idx := New[float64]()
	idx.Add(0, 0, 10, 10)
	idx.Add(5, 5, 15, 15)
	idx.Add(20, 20, 21, 21)
	idx.Build()

	require.ElementsMatch(t, []int{0, 1}, idx.Point(7, 7, nil))
	require.Empty(t, idx.Point(100, 100, nil))
}

func TestCircleQuery(t *testing.T) {
	idx := New[float64]()
	idx.Add(0, 0, 1, 1)
	idx.Add(10, 10, 11, 11)
	idx.Build()

	require.ElementsMatch(t, []int{0}, idx.Circle(0, 0, 3, nil))
}
