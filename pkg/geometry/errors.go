package geometry

import "fmt"

// DegenerateGeometryError is returned when an operation needs a direction but
// was given a zero-length (or non-finite) vector, typically because a face has
// duplicate adjacent vertices.
type DegenerateGeometryError struct {
	Op     string
	Vector Vector3
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("degenerate geometry in %s: vector (%g, %g, %g) has no direction",
		e.Op, e.Vector.X, e.Vector.Y, e.Vector.Z)
}
