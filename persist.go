package aabbtree

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	formatMagic   = "AABB"
	formatVersion = 1

	coordTagFloat64 = 0
	coordTagInt32   = 1
)

// coordTag returns the on-disk coordinate tag for C, per spec.md §6, or an
// error if C is not one of the two persisted variants (float64, int32).
// float32 is a valid Coord for in-memory use but has no wire tag.
func coordTag[C Coord]() (byte, error) {
	var z C
	switch any(z).(type) {
	case float64:
		return coordTagFloat64, nil
	case int32:
		return coordTagInt32, nil
	default:
		return 0, fmt.Errorf("aabbtree: coordinate type has no persisted format tag")
	}
}

func writeCoord[C Coord](w io.Writer, tag byte, v C) error {
	switch tag {
	case coordTagFloat64:
		return binary.Write(w, binary.LittleEndian, float64(v))
	default:
		return binary.Write(w, binary.LittleEndian, int32(v))
	}
}

func readCoord[C Coord](r io.Reader, tag byte) (C, error) {
	switch tag {
	case coordTagFloat64:
		var v float64
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return C(v), nil
	default:
		var v int32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return C(v), nil
	}
}

func writeBox[C Coord](w io.Writer, tag byte, b Box[C]) error {
	for _, v := range [4]C{b.MinX, b.MinY, b.MaxX, b.MaxY} {
		if err := writeCoord(w, tag, v); err != nil {
			return err
		}
	}
	return nil
}

func readBox[C Coord](r io.Reader, tag byte) (Box[C], error) {
	var vs [4]C
	for i := range vs {
		v, err := readCoord[C](r, tag)
		if err != nil {
			return Box[C]{}, err
		}
		vs[i] = v
	}
	return Box[C]{MinX: vs[0], MinY: vs[1], MaxX: vs[2], MaxY: vs[3]}, nil
}

// Save writes the built index's header plus packed buffer to path, per the
// persistent format of spec.md §6. Grounded on gogama/flatgeobuf's
// Marshal, but field-by-field through encoding/binary rather than an
// unsafe.Pointer struct cast, since one wire format here must serve two
// different coordinate widths.
func (idx *Index[C]) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("aabbtree: save: %w", err)
	}
	defer f.Close()
	if err := idx.WriteTo(f); err != nil {
		return fmt.Errorf("aabbtree: save: %w", err)
	}
	return f.Close()
}

// WriteTo serializes the index to w. Panics with ErrNotBuilt if called
// before Build.
func (idx *Index[C]) WriteTo(w io.Writer) error {
	if !idx.built {
		panic(ErrNotBuilt)
	}
	tag, err := coordTag[C]()
	if err != nil {
		return err
	}

	header := make([]byte, 16)
	copy(header[0:4], formatMagic)
	header[4] = formatVersion
	header[5] = tag
	header[6] = byte(idx.NodeSize)
	header[7] = 0
	binary.LittleEndian.PutUint64(header[8:16], uint64(idx.numItems))
	if _, err := w.Write(header); err != nil {
		return err
	}

	if err := writeBox(w, tag, idx.Bounds()); err != nil {
		return err
	}

	for _, b := range idx.nodes {
		if err := writeBox(w, tag, b); err != nil {
			return err
		}
	}
	for _, id := range idx.ids {
		if err := binary.Write(w, binary.LittleEndian, id); err != nil {
			return err
		}
	}
	return nil
}

// Load reads an index previously written by Save/WriteTo from path. The
// coordinate type C must match the type the index was saved with;
// otherwise ErrFormat is returned.
func Load[C Coord](path string) (*Index[C], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("aabbtree: load: %w", err)
	}
	defer f.Close()
	idx, err := ReadFrom[C](f)
	if err != nil {
		return nil, fmt.Errorf("aabbtree: load: %w", err)
	}
	return idx, nil
}

// ReadFrom deserializes an index from r, validating the header's magic,
// version, and coordinate tag per spec.md §7's "format" error kind.
func ReadFrom[C Coord](r io.Reader) (*Index[C], error) {
	wantTag, err := coordTag[C]()
	if err != nil {
		return nil, err
	}

	header := make([]byte, 16)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	if string(header[0:4]) != formatMagic {
		return nil, ErrFormat
	}
	if header[4] != formatVersion {
		return nil, ErrFormat
	}
	if header[5] != wantTag {
		return nil, ErrFormat
	}
	nodeSize := int(header[6])
	n := int(binary.LittleEndian.Uint64(header[8:16]))

	idx := &Index[C]{NodeSize: nodeSize, built: true, numItems: n}

	root, err := readBox[C](r, wantTag)
	if err != nil {
		return nil, err
	}
	idx.bounds = root

	if n == 0 {
		return idx, nil
	}

	idx.levels = levelify(n, nodeSize)
	total := idx.levels[len(idx.levels)-1].end
	idx.nodes = make([]Box[C], total)
	for i := range idx.nodes {
		b, err := readBox[C](r, wantTag)
		if err != nil {
			return nil, err
		}
		idx.nodes[i] = b
	}

	idx.ids = make([]int32, n)
	idx.invIDs = make([]int32, n)
	for pos := 0; pos < n; pos++ {
		if err := binary.Read(r, binary.LittleEndian, &idx.ids[pos]); err != nil {
			return nil, err
		}
		idx.invIDs[idx.ids[pos]] = int32(pos)
	}

	return idx, nil
}
