package aabbtree

// Box is an axis-aligned bounding box with min_x <= max_x and min_y <= max_y.
// A point is a degenerate Box with MinX == MaxX and MinY == MaxY.
type Box[C Coord] struct {
	MinX, MinY, MaxX, MaxY C
}

// invertedBox returns a box whose min/max are inverted (min = the largest,
// max = the smallest finite value of the coordinate type) so that the first
// Expand call establishes
// real bounds. Mirrors the teacher's InvertedBox used to seed Flatbush.bounds.
func invertedBox[C Coord]() Box[C] {
	lo, hi := minMaxOfType[C]()
	return Box[C]{MinX: hi, MinY: hi, MaxX: lo, MaxY: lo}
}

// minMaxOfType returns the smallest and largest finite values representable
// by C, used to seed invertedBox. float32/float64 use their max magnitude;
// int32 uses its signed range.
func minMaxOfType[C Coord]() (lo, hi C) {
	var z C
	switch any(z).(type) {
	case float32:
		return any(float32(-maxFloat32)).(C), any(float32(maxFloat32)).(C)
	case float64:
		return any(float64(-maxFloat64)).(C), any(float64(maxFloat64)).(C)
	default: // int32
		return any(int32(minInt32)).(C), any(int32(maxInt32)).(C)
	}
}

const (
	maxFloat32 = 3.4028234663852886e+38
	maxFloat64 = 1.7976931348623157e+308
	minInt32   = -2147483648
	maxInt32   = 2147483647
)

// Intersects reports whether a and b share at least one point, per the
// pointwise predicate of the coordinate model.
func (a Box[C]) Intersects(b Box[C]) bool {
	return a.MinX <= b.MaxX && b.MinX <= a.MaxX && a.MinY <= b.MaxY && b.MinY <= a.MaxY
}

// Contains reports whether a fully contains b.
func (a Box[C]) Contains(b Box[C]) bool {
	return a.MinX <= b.MinX && a.MinY <= b.MinY && a.MaxX >= b.MaxX && a.MaxY >= b.MaxY
}

// ContainsPoint reports whether (x, y) lies within a, inclusive of edges.
func (a Box[C]) ContainsPoint(x, y C) bool {
	return a.MinX <= x && x <= a.MaxX && a.MinY <= y && y <= a.MaxY
}

// Expand grows a in place to be the tight union of a and b. Used to reduce
// children into a parent MBR during build.
func (a *Box[C]) Expand(b Box[C]) {
	if b.MinX < a.MinX {
		a.MinX = b.MinX
	}
	if b.MinY < a.MinY {
		a.MinY = b.MinY
	}
	if b.MaxX > a.MaxX {
		a.MaxX = b.MaxX
	}
	if b.MaxY > a.MaxY {
		a.MaxY = b.MaxY
	}
}

// Center returns the box's midpoint, used to drive the Hilbert sort.
func (a Box[C]) Center() (x, y C) {
	return a.MinX + (a.MaxX-a.MinX)/2, a.MinY + (a.MaxY-a.MinY)/2
}
