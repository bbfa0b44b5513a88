package aabbtree

// Int32Index is the 32-bit signed integer façade over Index, matching
// spec.md §1's "fixed-width integer coordinate domains" external wrapper.
type Int32Index struct {
	*Index[int32]
}

// NewInt32Index constructs an empty Int32Index.
func NewInt32Index() *Int32Index {
	return &Int32Index{Index: New[int32]()}
}

// NewInt32IndexWithCapacity constructs an empty Int32Index with its
// staging slice preallocated for n items.
func NewInt32IndexWithCapacity(n int) *Int32Index {
	return &Int32Index{Index: NewWithCapacity[int32](n)}
}

// LoadInt32Index reads an Int32Index previously written by Save.
func LoadInt32Index(path string) (*Int32Index, error) {
	idx, err := Load[int32](path)
	if err != nil {
		return nil, err
	}
	return &Int32Index{Index: idx}, nil
}
