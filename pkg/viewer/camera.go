package viewer

import (
	"math"

	"github.com/philipparndt/forgemesh/pkg/geometry"
)

// nearPlane is the closest camera-space depth a point may have and still be
// projected
const nearPlane = 1e-3

// Camera orbits a target point at a fixed distance
type Camera struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Up       geometry.Vector3
	FOV      float64 // vertical field of view in radians
	Distance float64
	Pitch    float64 // elevation above the target's horizontal plane
	Yaw      float64 // rotation around the up axis
}

// NewCamera frames a bounding box from an elevated three-quarter view, far
// enough back for the whole box to fit the field of view
func NewCamera(bbox geometry.BoundingBox) *Camera {
	c := &Camera{
		Target: bbox.Center(),
		Up:     geometry.NewVector3(0, 1, 0),
		FOV:    math.Pi / 4,
		Pitch:  math.Pi / 6,
		Yaw:    math.Pi / 5,
	}

	radius := bbox.Diagonal() / 2
	if radius == 0 {
		radius = 1
	}
	c.Distance = radius / math.Sin(c.FOV/2) * 1.1
	c.UpdatePosition()
	return c
}

// UpdatePosition places the camera on its orbit sphere
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.Pitch) * math.Sin(c.Yaw)
	y := c.Distance * math.Sin(c.Pitch)
	z := c.Distance * math.Cos(c.Pitch) * math.Cos(c.Yaw)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Orbit turns the camera around the target. Pitch stops short of the poles,
// where the up vector would be parallel to the view direction.
func (c *Camera) Orbit(deltaPitch, deltaYaw float64) {
	limit := math.Pi/2 - 0.05
	c.Pitch = geometry.Clamp(c.Pitch+deltaPitch, -limit, limit)
	c.Yaw = math.Remainder(c.Yaw+deltaYaw, 2*math.Pi)
	c.UpdatePosition()
}

// Zoom scales the distance to the target by 1+delta
func (c *Camera) Zoom(delta float64) {
	c.Distance = math.Max(c.Distance*(1+delta), 1e-3)
	c.UpdatePosition()
}

// Forward is the unit direction the camera looks in
func (c *Camera) Forward() geometry.Vector3 {
	return c.Target.Sub(c.Position).Normalize()
}

// Project maps a point to screen coordinates and its camera-space depth.
// ok is false for points behind the near plane.
func (c *Camera) Project(point geometry.Vector3, width, height float64) (x, y, depth float64, ok bool) {
	forward := c.Forward()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward)

	relative := point.Sub(c.Position)
	depth = relative.Dot(forward)
	if depth < nearPlane {
		return 0, 0, depth, false
	}

	scale := math.Tan(c.FOV/2) * depth
	aspect := width / height
	x = (relative.Dot(right)/(scale*aspect))*(width/2) + width/2
	y = (-relative.Dot(up)/scale)*(height/2) + height/2
	return x, y, depth, true
}
