package mathutil

import "math"

// RotX returns a 3×3 rotation matrix around the X axis. Angle in radians.
func RotX(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotY returns a 3×3 rotation matrix around the Y axis.
func RotY(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// RotZ returns a 3×3 rotation matrix around the Z axis.
func RotZ(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// RotAxis returns the rotation by a radians around an arbitrary axis (Rodrigues).
// A zero axis yields the identity.
func RotAxis(a float64, axis Vec3) Mat3 {
	n := axis.Normalize()
	if n == (Vec3{}) {
		return Mat3Identity()
	}
	c, s := math.Cos(a), math.Sin(a)
	t := 1 - c
	x, y, z := n[0], n[1], n[2]
	return Mat3{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c,
	}
}

// Reflect returns the reflection matrix through the plane with the given normal.
func Reflect(normal Vec3) Mat3 {
	n := normal.Normalize()
	if n == (Vec3{}) {
		return Mat3Identity()
	}
	x, y, z := n[0], n[1], n[2]
	return Mat3{
		1 - 2*x*x, -2 * x * y, -2 * x * z,
		-2 * x * y, 1 - 2*y*y, -2 * y * z,
		-2 * x * z, -2 * y * z, 1 - 2*z*z,
	}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}
