package walls_test

import (
	"slices"
	"testing"

	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/mathutil"
	"dactyl-gen/internal/params"
	"dactyl-gen/internal/placement"
	"dactyl-gen/internal/shapes"
	"dactyl-gen/internal/walls"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const floor = -40.0

func generator(t *testing.T, edit func(*params.Spec)) *walls.Generator {
	t.Helper()
	s := params.DefaultSpec()
	if edit != nil {
		edit(&s)
	}
	p, err := params.New(s)
	require.NoError(t, err)
	return walls.New(placement.New(p), shapes.New(p), floor, nil)
}

func TestLocateOffsets(t *testing.T) {
	g := generator(t, nil)
	assert.Equal(t, [3]float64{2, 0, -1}, [3]float64(g.Locate1(1, 0)))
	assert.Equal(t, [3]float64{0, -5, -15}, [3]float64(g.Locate2(0, -1)))
	assert.Equal(t, [3]float64{-7, 3.5, -15}, [3]float64(g.Locate3(-1, 0.5)))
}

func TestBottomHullReachesFloor(t *testing.T) {
	g := generator(t, nil)
	post := csg.Translate([3]float64{3, 4, 20}, csg.Box(1, 1, 1))
	b := csg.Bounds(g.BottomHull(post))

	assert.InDelta(t, floor, b.Min[2], 1e-9)
	assert.InDelta(t, 20.5, b.Max[2], 1e-9)
	assert.InDelta(t, 2.5, b.Min[0], 1e-9)
}

func TestCoincidentBraceHasExtent(t *testing.T) {
	g := generator(t, nil)
	tests := []struct {
		name string
		a, b walls.Side
	}{
		{"same direction", g.Key(0, 0, 0, 1, shapes.TopLeft), g.Key(0, 0, 0, 1, shapes.TopLeft)},
		{"opposite directions", g.Key(0, 0, 0, 1, shapes.TopLeft), g.Key(0, 0, 0, -1, shapes.TopLeft)},
		{"opposite sideways", g.Key(2, 1, 1, 0, shapes.BottomRight), g.Key(2, 1, -1, 0, shapes.BottomRight)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brace := g.Brace(tt.a, tt.b)
			require.NotNil(t, brace)

			b := csg.Bounds(brace)
			require.False(t, b.Empty())
			for axis := 0; axis < 3; axis++ {
				assert.Greater(t, b.Max[axis]-b.Min[axis], 0.05, "axis %d", axis)
			}
			assert.InDelta(t, floor, b.Min[2], 1e-9)
		})
	}

	// opposite offsets of one post span both wall faces
	a := g.Outer(g.Key(0, 0, 0, 1, shapes.TopLeft))
	b := g.Outer(g.Key(0, 0, 0, -1, shapes.TopLeft))
	d := g.Locate3(0, 1)
	assert.InDelta(t, 2*d[1], a.Sub(b).Len(), 1e-9)
}

func TestSegmentCounts(t *testing.T) {
	g := generator(t, nil)
	assert.Len(t, g.RightWall(), 9)
	assert.Len(t, g.BackWall(), 11)
	assert.Len(t, g.LeftWall(), 9)
	assert.Len(t, g.FrontWall(), 5)
	assert.Len(t, g.ThumbWalls(), 13)
	assert.Empty(t, g.PinkyWalls())
	assert.Len(t, g.Segments(), 47)

	wide := generator(t, func(s *params.Spec) { s.WidePinky = true })
	assert.Len(t, wide.PinkyWalls(), 2)
	assert.Len(t, wide.Segments(), 49)
}

func TestFrontWallStartsAtShortRow(t *testing.T) {
	g := generator(t, nil)
	p := params.Default()
	first := g.FrontWall()[0]
	assert.Equal(t, g.Outer(g.Key(3, p.LastRow, 0, -1, shapes.BottomLeft)), g.Outer(first.A))
}

func TestCaseWallsAreGrounded(t *testing.T) {
	g := generator(t, nil)
	shell := g.CaseWalls()
	require.NotNil(t, shell)

	b := csg.Bounds(shell)
	assert.InDelta(t, floor, b.Min[2], 1e-9)
	assert.Greater(t, b.Max[2], 0.0)
	assert.Equal(t, 5, len(g.ThumbTransitions()))
	assert.Equal(t, 7, len(g.LeftWebs()))
}

func TestOutlineIsFlat(t *testing.T) {
	g := generator(t, nil)
	pts := g.Outline()
	require.Greater(t, len(pts), 20)
	for _, v := range pts {
		assert.Zero(t, v[2])
	}
	for i := 1; i < len(pts); i++ {
		assert.False(t, pts[i].ApproxEqual(pts[i-1], 1e-9))
	}

	fp := g.Footprint(2)
	require.NotNil(t, fp)
	u, ok := fp.(csg.Boolean)
	require.True(t, ok)
	assert.Len(t, u.Children, len(pts))

	b := csg.Bounds(fp)
	assert.InDelta(t, 0, b.Min[2], 1e-9)
	assert.InDelta(t, 2, b.Max[2], 1e-9)
}

func TestOutlineFollowsBraces(t *testing.T) {
	g := generator(t, nil)
	pts := g.Outline()
	at := func(v mathutil.Vec3) int {
		v[2] = 0
		for i, o := range pts {
			if o.ApproxEqual(v, 1e-9) {
				return i
			}
		}
		return -1
	}

	n := len(pts)
	for _, s := range g.Segments() {
		i, j := at(g.Outer(s.A)), at(g.Outer(s.B))
		require.GreaterOrEqual(t, i, 0, s.Name)
		require.GreaterOrEqual(t, j, 0, s.Name)
		gap := (i - j + n) % n
		assert.True(t, gap == 1 || gap == n-1, "%s joins outline points %d and %d", s.Name, i, j)
	}

	// the chain opens where the left wall meets the thumb transition
	p := params.Default()
	start := g.Outer(g.Left(p.CornerRow, -1, -1, 0))
	assert.Equal(t, 0, at(start))
}

func TestOutlineKeepsPinkyCorners(t *testing.T) {
	g := generator(t, func(s *params.Spec) { s.WidePinky = true })
	pts := g.Outline()
	for _, s := range g.PinkyWalls() {
		for _, side := range []walls.Side{s.A, s.B} {
			v := g.Outer(side)
			v[2] = 0
			assert.True(t, slices.ContainsFunc(pts, func(o mathutil.Vec3) bool { return o.ApproxEqual(v, 1e-9) }), s.Name)
		}
	}
	for i := 1; i < len(pts); i++ {
		assert.False(t, pts[i].ApproxEqual(pts[i-1], 1e-9))
	}
}

func TestWallsAreDeterministic(t *testing.T) {
	a := generator(t, nil)
	b := generator(t, nil)
	assert.Equal(t, a.CaseWalls(), b.CaseWalls())
}
