package geometry

import "math"

// CornerAngle returns the angle in degrees at corner between the rays towards
// outer1 and outer2. The result lies in [0, 180] and is not rounded.
func CornerAngle(outer1, corner, outer2 Vector3) (float64, error) {
	v1, err := outer1.Sub(corner).Unit()
	if err != nil {
		return 0, err
	}
	v2, err := outer2.Sub(corner).Unit()
	if err != nil {
		return 0, err
	}

	dot := Clamp(v1.Dot(v2), -1, 1)
	return math.Acos(dot) * 180.0 / math.Pi, nil
}

// NormalizeAngle shifts an angle in degrees once by 360 so that values up to
// one turn outside land in [-180, 180]. For example 190 becomes -170.
func NormalizeAngle(angle float64) float64 {
	if angle > 180 {
		return angle - 360
	}
	if angle < -180 {
		return angle + 360
	}
	return angle
}

// Lerp interpolates between from and to. A progress of 0.5 returns the midpoint.
func Lerp(from, to, progress float64) float64 {
	return from + (to-from)*progress
}

// Clamp limits value to the range [min, max]
func Clamp(value, min, max float64) float64 {
	return math.Min(max, math.Max(min, value))
}

// Round rounds value to the given number of decimals. Negative zero is
// returned as zero so formatted output never shows "-0".
func Round(value float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	r := math.Round(value*p) / p
	if r == 0 {
		return 0
	}
	return r
}

// RadToDeg converts radians to degrees
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
