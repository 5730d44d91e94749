package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// gimbalThreshold is the |m23| above which YXZ extraction treats the
// rotation as gimbal locked.
const gimbalThreshold = 0.9999999

// Quaternion represents a rotation.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quaternion struct {
	X, Y, Z, W float64
}

// Mgl converts the quaternion to its mathgl representation
func (q Quaternion) Mgl() mgl64.Quat {
	return mgl64.Quat{W: q.W, V: mgl64.Vec3{q.X, q.Y, q.Z}}
}

// LookRotation returns the rotation that points the local +Z axis along
// forward with the local +Y axis as close to up as possible.
//
// The basis is re-orthogonalized (right = up x forward, up = forward x right)
// and converted to a quaternion by the trace-based method, choosing the branch
// by the largest diagonal term. The branch order decides the sign of the
// result and therefore the continuity of the Euler angles derived from it.
func LookRotation(forward, up Vector3) (Quaternion, error) {
	forward, err := forward.Unit()
	if err != nil {
		return Quaternion{}, err
	}
	right, err := up.Cross(forward).Unit()
	if err != nil {
		return Quaternion{}, &DegenerateGeometryError{Op: "look rotation (up parallel to forward)", Vector: up}
	}
	up, err = forward.Cross(right).Unit()
	if err != nil {
		return Quaternion{}, err
	}

	m00, m01, m02 := right.X, right.Y, right.Z
	m10, m11, m12 := up.X, up.Y, up.Z
	m20, m21, m22 := forward.X, forward.Y, forward.Z

	trace := m00 + m11 + m22
	if trace > 0 {
		num := math.Sqrt(trace + 1)
		w := num * 0.5
		num = 0.5 / num
		return Quaternion{
			X: (m12 - m21) * num,
			Y: (m20 - m02) * num,
			Z: (m01 - m10) * num,
			W: w,
		}, nil
	}
	if m00 >= m11 && m00 >= m22 {
		num := math.Sqrt(1 + m00 - m11 - m22)
		inv := 0.5 / num
		return Quaternion{
			X: 0.5 * num,
			Y: (m01 + m10) * inv,
			Z: (m02 + m20) * inv,
			W: (m12 - m21) * inv,
		}, nil
	}
	if m11 > m22 {
		num := math.Sqrt(1 + m11 - m00 - m22)
		inv := 0.5 / num
		return Quaternion{
			X: (m10 + m01) * inv,
			Y: 0.5 * num,
			Z: (m21 + m12) * inv,
			W: (m20 - m02) * inv,
		}, nil
	}
	num := math.Sqrt(1 + m22 - m00 - m11)
	inv := 0.5 / num
	return Quaternion{
		X: (m20 + m02) * inv,
		Y: (m21 + m12) * inv,
		Z: 0.5 * num,
		W: (m01 - m10) * inv,
	}, nil
}

// RotationMatrix returns the 3x3 rotation matrix of the quaternion
func (q Quaternion) RotationMatrix() mgl64.Mat3 {
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, xy, xz := q.X*x2, q.X*y2, q.X*z2
	yy, yz, zz := q.Y*y2, q.Y*z2, q.Z*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2

	// column-major
	return mgl64.Mat3{
		1 - (yy + zz), xy + wz, xz - wy,
		xy - wz, 1 - (xx + zz), yz + wx,
		xz + wy, yz - wx, 1 - (xx + yy),
	}
}

// EulerYXZ converts the quaternion to intrinsic Y-X-Z Euler angles in degrees.
// X holds the pitch, Y the yaw and Z the roll.
func (q Quaternion) EulerYXZ() Vector3 {
	m := q.RotationMatrix()
	m11, m13 := m.At(0, 0), m.At(0, 2)
	m21, m22, m23 := m.At(1, 0), m.At(1, 1), m.At(1, 2)
	m31, m33 := m.At(2, 0), m.At(2, 2)

	var out Vector3
	out.X = math.Asin(-Clamp(m23, -1, 1))
	if math.Abs(m23) < gimbalThreshold {
		out.Y = math.Atan2(m13, m33)
		out.Z = math.Atan2(m21, m22)
	} else {
		out.Y = math.Atan2(-m31, m11)
		out.Z = 0
	}

	return Vector3{X: RadToDeg(out.X), Y: RadToDeg(out.Y), Z: RadToDeg(out.Z)}
}
