package csg

import "dactyl-gen/internal/mathutil"

// Box is a box of the given edge lengths centred on the origin.
func Box(x, y, z float64) Node {
	return Primitive{Shape: ShapeBox, Size: mathutil.Vec3{x, y, z}}
}

// Cylinder is a z-aligned cylinder centred on the origin.
func Cylinder(r, h float64, segments int) Node {
	return Cone(r, r, h, segments)
}

// Cone is a z-aligned truncated cone, bottom radius r1, top radius r2.
func Cone(r1, r2, h float64, segments int) Node {
	return Primitive{Shape: ShapeCylinder, Radius1: r1, Radius2: r2, Height: h, Segments: segments}
}

func Sphere(r float64, segments int) Node {
	return Primitive{Shape: ShapeSphere, Radius1: r, Segments: segments}
}

// Extrude extrudes an xy polygon by h, centred on z=0.
func Extrude(polygon [][2]float64, h float64) Node {
	pts := make([][2]float64, len(polygon))
	copy(pts, polygon)
	return Primitive{Shape: ShapeExtrusion, Polygon: pts, Height: h}
}

// Square is the extrusion of an axis-aligned w×h rectangle.
func Square(w, h, height float64) Node {
	x, y := w/2, h/2
	return Extrude([][2]float64{{x, y}, {x, -y}, {-x, -y}, {-x, y}}, height)
}

func Translate(v mathutil.Vec3, n Node) Node {
	if n == nil {
		return nil
	}
	return Transform{Op: OpTranslate, Vector: v, Child: n}
}

// Rotate rotates n by a radians about axis.
func Rotate(a float64, axis mathutil.Vec3, n Node) Node {
	if n == nil {
		return nil
	}
	return Transform{Op: OpRotate, Vector: axis, Angle: a, Child: n}
}

func RotateX(a float64, n Node) Node { return Rotate(a, mathutil.Vec3{1, 0, 0}, n) }
func RotateY(a float64, n Node) Node { return Rotate(a, mathutil.Vec3{0, 1, 0}, n) }
func RotateZ(a float64, n Node) Node { return Rotate(a, mathutil.Vec3{0, 0, 1}, n) }

// Mirror reflects n through the plane through the origin with the given normal.
func Mirror(normal mathutil.Vec3, n Node) Node {
	if n == nil {
		return nil
	}
	return Transform{Op: OpMirror, Vector: normal, Child: n}
}

// Union joins the non-nil children. It returns nil when nothing is left
// and the child itself when only one is.
func Union(children ...Node) Node {
	c := compact(children)
	switch len(c) {
	case 0:
		return nil
	case 1:
		return c[0]
	}
	return newBoolean(OpUnion, c)
}

// Difference removes cuts from base. A nil base yields nil.
func Difference(base Node, cuts ...Node) Node {
	if base == nil {
		return nil
	}
	c := compact(cuts)
	if len(c) == 0 {
		return base
	}
	return newBoolean(OpDifference, append([]Node{base}, c...))
}

func Intersection(children ...Node) Node {
	c := compact(children)
	switch len(c) {
	case 0:
		return nil
	case 1:
		return c[0]
	}
	return newBoolean(OpIntersection, c)
}

// NewHull is the convex hull of the non-nil children.
func NewHull(children ...Node) (Node, error) {
	c := compact(children)
	if len(c) < 2 {
		return nil, ErrDegenerateHull
	}
	return newBoolean(OpHull, c), nil
}

// Hull is NewHull with degenerate hulls dropped: it returns nil, which
// every combinator here skips.
func Hull(children ...Node) Node {
	n, err := NewHull(children...)
	if err != nil {
		return nil
	}
	return n
}

// Project flattens n onto z=0 and extrudes it by height.
func Project(n Node, height float64) Node {
	if n == nil {
		return nil
	}
	return Projection{Child: n, Height: height}
}
