// Package csg is the constructive-solid-geometry tree handed to a modelling
// kernel: primitives, rigid transforms, boolean operations and ground
// projections. It only builds and inspects trees; nothing here evaluates a
// solid.
//
// Nodes are immutable values. Constructors copy their child slices, so a
// subtree reused in several places never aliases mutable state.
package csg

import (
	"errors"
	"slices"

	"dactyl-gen/internal/mathutil"
)

// ErrDegenerateHull is returned by NewHull when fewer than two shapes are given.
var ErrDegenerateHull = errors.New("csg: hull needs at least 2 shapes")

// Kind tags the four node variants.
type Kind uint8

const (
	KindPrimitive Kind = iota + 1
	KindTransform
	KindBoolean
	KindProjection
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindTransform:
		return "transform"
	case KindBoolean:
		return "boolean"
	case KindProjection:
		return "projection"
	}
	return "unknown"
}

// Node is one of Primitive, Transform, Boolean or Projection.
type Node interface {
	Kind() Kind
	node()
}

// Shape is the primitive solid type.
type Shape uint8

const (
	ShapeBox Shape = iota + 1
	ShapeCylinder
	ShapeSphere
	ShapeExtrusion
)

// Primitive is a solid centred on its local origin.
type Primitive struct {
	Shape Shape
	// Size is the box edge lengths.
	Size mathutil.Vec3
	// Radius1 is the cylinder bottom radius or the sphere radius;
	// Radius2 the cylinder top radius.
	Radius1 float64
	Radius2 float64
	// Height of a cylinder or extrusion.
	Height float64
	// Polygon is the extrusion outline in the xy plane.
	Polygon [][2]float64
	// Segments is the tessellation resolution for round shapes; 0 leaves it
	// to the kernel.
	Segments int
}

func (Primitive) Kind() Kind { return KindPrimitive }
func (Primitive) node()      {}

// TransformOp is the rigid motion a Transform applies.
type TransformOp uint8

const (
	OpTranslate TransformOp = iota + 1
	OpRotate
	OpMirror
)

// Transform moves its child. Vector is the offset (translate), the axis
// (rotate) or the plane normal (mirror); Angle is in radians.
type Transform struct {
	Op     TransformOp
	Vector mathutil.Vec3
	Angle  float64
	Child  Node
}

func (Transform) Kind() Kind { return KindTransform }
func (Transform) node()      {}

// Matrix returns the affine matrix of this single transform.
func (t Transform) Matrix() mathutil.Mat4 {
	switch t.Op {
	case OpTranslate:
		return mathutil.Translate(t.Vector).Mat4()
	case OpRotate:
		return mathutil.Rotate(mathutil.RotAxis(t.Angle, t.Vector)).Mat4()
	case OpMirror:
		return mathutil.Rotate(mathutil.Reflect(t.Vector)).Mat4()
	}
	return mathutil.Mat4Identity()
}

// BoolOp is the boolean combination of a Boolean node.
type BoolOp uint8

const (
	OpUnion BoolOp = iota + 1
	OpDifference
	OpHull
	OpIntersection
)

func (o BoolOp) String() string {
	switch o {
	case OpUnion:
		return "union"
	case OpDifference:
		return "difference"
	case OpHull:
		return "hull"
	case OpIntersection:
		return "intersection"
	}
	return "unknown"
}

// Boolean combines an ordered list of children. For OpDifference the
// first child is the base and the rest are removed from it.
type Boolean struct {
	Op       BoolOp
	Children []Node
}

func (Boolean) Kind() Kind { return KindBoolean }
func (Boolean) node()      {}

// Projection flattens Child onto z=0 and extrudes the outline upwards by Height.
type Projection struct {
	Child  Node
	Height float64
}

func (Projection) Kind() Kind { return KindProjection }
func (Projection) node()      {}

func compact(children []Node) []Node {
	out := make([]Node, 0, len(children))
	for _, c := range children {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

func newBoolean(op BoolOp, children []Node) Node {
	return Boolean{Op: op, Children: slices.Clip(children)}
}
