package csg_test

import (
	"math"
	"testing"

	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/mathutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHullNeedsTwoShapes(t *testing.T) {
	_, err := csg.NewHull(csg.Box(1, 1, 1))
	require.ErrorIs(t, err, csg.ErrDegenerateHull)

	_, err = csg.NewHull(nil, csg.Box(1, 1, 1), nil)
	require.ErrorIs(t, err, csg.ErrDegenerateHull)

	assert.Nil(t, csg.Hull())

	h, err := csg.NewHull(csg.Box(1, 1, 1), nil, csg.Sphere(1, 8))
	require.NoError(t, err)
	assert.Len(t, h.(csg.Boolean).Children, 2)
	assert.Equal(t, csg.OpHull, h.(csg.Boolean).Op)
}

func TestCombinatorsSkipNil(t *testing.T) {
	b := csg.Box(1, 2, 3)
	assert.Nil(t, csg.Union())
	assert.Nil(t, csg.Union(nil, nil))
	assert.Equal(t, b, csg.Union(nil, b))
	assert.Equal(t, b, csg.Difference(b, nil))
	assert.Nil(t, csg.Difference(nil, b))
	assert.Nil(t, csg.Translate(mathutil.Vec3{1, 0, 0}, nil))
	assert.Nil(t, csg.Project(nil, 1))

	u := csg.Union(b, nil, b)
	assert.Len(t, u.(csg.Boolean).Children, 2)
}

func TestConstructorsCopyChildren(t *testing.T) {
	kids := []csg.Node{csg.Box(1, 1, 1), csg.Box(2, 2, 2)}
	u := csg.Union(kids...)
	kids[0] = csg.Sphere(9, 3)
	assert.Equal(t, csg.Box(1, 1, 1), u.(csg.Boolean).Children[0])

	poly := [][2]float64{{0, 0}, {1, 0}, {0, 1}}
	e := csg.Extrude(poly, 1)
	poly[0] = [2]float64{5, 5}
	assert.Equal(t, [2]float64{0, 0}, e.(csg.Primitive).Polygon[0])
}

func TestLocateComposesOutsideIn(t *testing.T) {
	n := csg.Translate(mathutil.Vec3{0, 0, 10},
		csg.RotateX(math.Pi/2,
			csg.Translate(mathutil.Vec3{0, 1, 0}, csg.Box(1, 1, 1))))

	p, ok := csg.Locate(n)
	require.True(t, ok)
	// inner translate first, then rotate, then outer translate
	assert.True(t, p.ApproxEqual(mathutil.Vec3{0, 0, 11}, 1e-9), "got %v", p)

	_, ok = csg.Locate(nil)
	assert.False(t, ok)
}

func TestPointsMirror(t *testing.T) {
	tree := csg.Union(
		csg.Translate(mathutil.Vec3{3, 1, 2}, csg.Box(1, 1, 1)),
		csg.Translate(mathutil.Vec3{-5, 0, 1}, csg.Sphere(1, 8)),
	)
	mirrored := csg.Mirror(mathutil.Vec3{1, 0, 0}, tree)

	a, b := csg.Points(tree), csg.Points(mirrored)
	require.Len(t, b, len(a))
	for i := range a {
		want := mathutil.Vec3{-a[i][0], a[i][1], a[i][2]}
		assert.True(t, b[i].ApproxEqual(want, 1e-9))
	}
}

func TestBounds(t *testing.T) {
	tree := csg.Union(
		csg.Translate(mathutil.Vec3{10, 0, 0}, csg.Box(2, 2, 2)),
		csg.Translate(mathutil.Vec3{0, 0, -5}, csg.Sphere(1, 8)),
	)
	b := csg.Bounds(tree)
	assert.True(t, b.Min.ApproxEqual(mathutil.Vec3{-1, -1, -6}, 1e-9), "min %v", b.Min)
	assert.True(t, b.Max.ApproxEqual(mathutil.Vec3{11, 1, 1}, 1e-9), "max %v", b.Max)

	d := csg.Difference(csg.Box(2, 2, 2), csg.Box(10, 10, 10))
	assert.Equal(t, mathutil.Vec3{1, 1, 1}, csg.Bounds(d).Max)

	p := csg.Translate(mathutil.Vec3{0, 0, -3}, csg.Project(csg.Translate(mathutil.Vec3{0, 0, 40}, csg.Box(2, 2, 2)), 0.5))
	pb := csg.Bounds(p)
	assert.InDelta(t, -3, pb.Min[2], 1e-9)
	assert.InDelta(t, -2.5, pb.Max[2], 1e-9)

	i := csg.Intersection(csg.Box(2, 2, 2), csg.Sphere(5, 8))
	assert.Equal(t, mathutil.Vec3{-1, -1, -1}, csg.Bounds(i).Min)

	assert.True(t, csg.Bounds(csg.Boolean{Op: csg.OpUnion}).Empty())
}

func TestCount(t *testing.T) {
	tree := csg.Difference(
		csg.Union(csg.Box(1, 1, 1), csg.RotateZ(1, csg.Cylinder(1, 2, 12))),
		csg.Project(csg.Sphere(1, 8), 1),
	)
	c := csg.Count(tree)
	assert.Equal(t, 3, c[csg.KindPrimitive])
	assert.Equal(t, 1, c[csg.KindTransform])
	assert.Equal(t, 2, c[csg.KindBoolean])
	assert.Equal(t, 1, c[csg.KindProjection])
}
