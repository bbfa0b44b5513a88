package aabbtree

// Float64Index is the 64-bit floating-point façade over Index, matching
// spec.md §1's "floating-point... variant" external wrapper. It exists
// purely for callers who don't want to spell out the generic parameter,
// the way the teacher's Flatbush64 sits alongside the generic
// Flatbush[TFloat].
type Float64Index struct {
	*Index[float64]
}

// NewFloat64Index constructs an empty Float64Index.
func NewFloat64Index() *Float64Index {
	return &Float64Index{Index: New[float64]()}
}

// NewFloat64IndexWithCapacity constructs an empty Float64Index with its
// staging slice preallocated for n items.
func NewFloat64IndexWithCapacity(n int) *Float64Index {
	return &Float64Index{Index: NewWithCapacity[float64](n)}
}

// LoadFloat64Index reads a Float64Index previously written by Save.
func LoadFloat64Index(path string) (*Float64Index, error) {
	idx, err := Load[float64](path)
	if err != nil {
		return nil, err
	}
	return &Float64Index{Index: idx}, nil
}
