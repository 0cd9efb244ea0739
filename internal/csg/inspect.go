package csg

import (
	"math"

	"dactyl-gen/internal/mathutil"
)

// flatten drops z, as Projection does before extruding.
var flatten = mathutil.FromMat3Translation(mathutil.Mat3Diag(1, 1, 0), mathutil.Vec3{})

// Locate follows a chain of Transform nodes and returns where the local
// origin of the node at its end lands. ok is false if n is nil.
func Locate(n Node) (mathutil.Vec3, bool) {
	m, ok := ChainMatrix(n)
	if !ok {
		return mathutil.Vec3{}, false
	}
	return m.MulPoint(mathutil.Vec3{}), true
}

// ChainMatrix composes the Transform chain at the top of n.
func ChainMatrix(n Node) (mathutil.Mat4, bool) {
	if n == nil {
		return mathutil.Mat4Identity(), false
	}
	m := mathutil.Mat4Identity()
	for {
		t, ok := n.(Transform)
		if !ok {
			return m, true
		}
		m = mathutil.Mat4Mul(m, t.Matrix())
		n = t.Child
	}
}

// Visit is called for every primitive with its world matrix.
type Visit func(world mathutil.Mat4, p Primitive)

// Walk visits every primitive of the tree in child order.
// Projected subtrees are visited flattened onto z=0.
func Walk(n Node, fn Visit) {
	walk(n, mathutil.Mat4Identity(), fn)
}

func walk(n Node, world mathutil.Mat4, fn Visit) {
	switch v := n.(type) {
	case Primitive:
		fn(world, v)
	case Transform:
		walk(v.Child, mathutil.Mat4Mul(world, v.Matrix()), fn)
	case Boolean:
		for _, c := range v.Children {
			walk(c, world, fn)
		}
	case Projection:
		walk(v.Child, mathutil.Mat4Mul(world, flatten), fn)
	}
}

// Points returns the world position of every primitive's local origin.
func Points(n Node) []mathutil.Vec3 {
	var pts []mathutil.Vec3
	Walk(n, func(world mathutil.Mat4, _ Primitive) {
		pts = append(pts, world.MulPoint(mathutil.Vec3{}))
	})
	return pts
}

// Count returns the number of nodes of each kind.
func Count(n Node) map[Kind]int {
	counts := map[Kind]int{}
	var rec func(Node)
	rec = func(n Node) {
		if n == nil {
			return
		}
		counts[n.Kind()]++
		switch v := n.(type) {
		case Transform:
			rec(v.Child)
		case Boolean:
			for _, c := range v.Children {
				rec(c)
			}
		case Projection:
			rec(v.Child)
		}
	}
	rec(n)
	return counts
}

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min mathutil.Vec3
	Max mathutil.Vec3
}

func emptyBox() Box3 {
	inf := math.Inf(1)
	return Box3{Min: mathutil.Vec3{inf, inf, inf}, Max: mathutil.Vec3{-inf, -inf, -inf}}
}

// Empty reports whether the box encloses nothing.
func (b Box3) Empty() bool {
	return b.Min[0] > b.Max[0]
}

func (b Box3) union(o Box3) Box3 {
	return Box3{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

func (b Box3) corners() [8]mathutil.Vec3 {
	var c [8]mathutil.Vec3
	for i := 0; i < 8; i++ {
		for k := 0; k < 3; k++ {
			if i&(1<<k) != 0 {
				c[i][k] = b.Max[k]
			} else {
				c[i][k] = b.Min[k]
			}
		}
	}
	return c
}

func (b Box3) transform(m mathutil.Mat4) Box3 {
	if b.Empty() {
		return b
	}
	out := emptyBox()
	for _, c := range b.corners() {
		p := m.MulPoint(c)
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}

// Bounds is a conservative bounding box of n: transformed primitive
// boxes, unions and hulls merged, differences and intersections bounded
// by their first child.
func Bounds(n Node) Box3 {
	switch v := n.(type) {
	case Primitive:
		return primitiveBox(v)
	case Transform:
		return Bounds(v.Child).transform(v.Matrix())
	case Boolean:
		if len(v.Children) == 0 {
			return emptyBox()
		}
		if v.Op == OpDifference || v.Op == OpIntersection {
			return Bounds(v.Children[0])
		}
		b := emptyBox()
		for _, c := range v.Children {
			b = b.union(Bounds(c))
		}
		return b
	case Projection:
		b := Bounds(v.Child)
		if b.Empty() {
			return b
		}
		b.Min[2], b.Max[2] = 0, v.Height
		return b
	}
	return emptyBox()
}

func primitiveBox(p Primitive) Box3 {
	switch p.Shape {
	case ShapeBox:
		h := p.Size.Scale(0.5)
		return Box3{Min: h.Neg(), Max: h}
	case ShapeCylinder:
		r := math.Max(p.Radius1, p.Radius2)
		return Box3{Min: mathutil.Vec3{-r, -r, -p.Height / 2}, Max: mathutil.Vec3{r, r, p.Height / 2}}
	case ShapeSphere:
		r := p.Radius1
		return Box3{Min: mathutil.Vec3{-r, -r, -r}, Max: mathutil.Vec3{r, r, r}}
	case ShapeExtrusion:
		b := emptyBox()
		for _, pt := range p.Polygon {
			v := mathutil.Vec3{pt[0], pt[1], -p.Height / 2}
			b.Min = b.Min.Min(v)
			b.Max = b.Max.Max(mathutil.Vec3{pt[0], pt[1], p.Height / 2})
		}
		return b
	}
	return emptyBox()
}
