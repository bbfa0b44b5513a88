package aabbtree

import (
	"bytes"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTripFloat64(t *testing.T) {
	idx := New[float64]()
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 400; i++ {
		x, y := rng.Float64()*100, rng.Float64()*100
		idx.Add(x, y, x+rng.Float64()*3, y+rng.Float64()*3)
	}
	idx.Build()

	var buf bytes.Buffer
	require.NoError(t, idx.WriteTo(&buf))

	got, err := ReadFrom[float64](bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	q := Box[float64]{MinX: 10, MinY: 10, MaxX: 40, MaxY: 40}
	require.ElementsMatch(t, idx.Intersecting(q, nil), got.Intersecting(q, nil))
	for i := 0; i < idx.Len(); i++ {
		require.Equal(t, idx.Get(i), got.Get(i))
	}
}

func TestRoundTripInt32ViaFile(t *testing.T) {
	idx := NewInt32Index()
	idx.Add(0, 0, 10, 10)
	idx.Add(20, 20, 30, 30)
	idx.Add(5, 5, 25, 25)
	idx.Build()

	path := filepath.Join(t.TempDir(), "idx.bin")
	require.NoError(t, idx.Save(path))

	got, err := LoadInt32Index(path)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, sortInts(got.ContainedWithin(Box[int32]{MinX: 0, MinY: 0, MaxX: 40, MaxY: 40}, nil)))
}

func TestLoadRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("XXXX")
	buf.Write(make([]byte, 12))
	_, err := ReadFrom[float64](&buf)
	require.ErrorIs(t, err, ErrFormat)
}

func TestLoadRejectsWrongCoordTag(t *testing.T) {
	idx := New[float64]()
	idx.Add(0, 0, 1, 1)
	idx.Build()
	var buf bytes.Buffer
	require.NoError(t, idx.WriteTo(&buf))

	_, err := ReadFrom[int32](bytes.NewReader(buf.Bytes()))
	require.ErrorIs(t, err, ErrFormat)
}

func TestRoundTripEmpty(t *testing.T) {
	idx := New[float64]()
	idx.Build()
	var buf bytes.Buffer
	require.NoError(t, idx.WriteTo(&buf))

	got, err := ReadFrom[float64](bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 0, got.Len())
	require.Empty(t, got.Intersecting(Box[float64]{MaxX: 1, MaxY: 1}, nil))
}

func sortInts(xs []int) []int {
	out := append([]int{}, xs...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
