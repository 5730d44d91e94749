package geometry

// BoundingBox is an axis-aligned box around a set of points. The zero value
// holds no points.
type BoundingBox struct {
	Min Vector3
	Max Vector3

	filled bool
}

// NewBoundingBox creates a box that the first extended point will fill
func NewBoundingBox() BoundingBox {
	return BoundingBox{}
}

// BoundsOf returns the smallest box holding all points
func BoundsOf(points []Vector3) BoundingBox {
	var b BoundingBox
	for _, p := range points {
		b.Extend(p)
	}
	return b
}

// Extend grows the box to hold point
func (b *BoundingBox) Extend(point Vector3) {
	if !b.filled {
		b.Min, b.Max, b.filled = point, point, true
		return
	}
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// Empty reports whether no point has been added yet
func (b BoundingBox) Empty() bool {
	return !b.filled
}

// Size is the extent along each axis; zero for an empty box
func (b BoundingBox) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Center is the midpoint between the two extreme corners
func (b BoundingBox) Center() Vector3 {
	return b.Min.Lerp(b.Max, 0.5)
}

// Diagonal is the distance between the two extreme corners
func (b BoundingBox) Diagonal() float64 {
	return b.Min.Distance(b.Max)
}

// Corners returns the eight corners, bit 0 of the index selecting max X,
// bit 1 max Y and bit 2 max Z
func (b BoundingBox) Corners() [8]Vector3 {
	var corners [8]Vector3
	for i := range corners {
		c := b.Min
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		corners[i] = c
	}
	return corners
}
