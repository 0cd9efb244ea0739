package connect_test

import (
	"reflect"
	"testing"

	"dactyl-gen/internal/connect"
	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/mathutil"
	"dactyl-gen/internal/params"
	"dactyl-gen/internal/placement"
	"dactyl-gen/internal/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anchors(n int) []csg.Node {
	out := make([]csg.Node, n)
	for i := range out {
		out[i] = csg.Translate(mathutil.Vec3{float64(i), 0, 0}, csg.Box(0.1, 0.1, 0.1))
	}
	return out
}

func TestTriangleHullsGroupCount(t *testing.T) {
	for n := 0; n <= 12; n++ {
		groups := connect.TriangleHulls(anchors(n)...)
		assert.Len(t, groups, max(0, n-3), "n=%d", n)
	}
}

func TestTriangleHullsSlideByOne(t *testing.T) {
	pts := anchors(6)
	groups := connect.TriangleHulls(pts...)
	require.Len(t, groups, 3)
	for i, g := range groups {
		h := g.(csg.Boolean)
		assert.Equal(t, csg.OpHull, h.Op)
		assert.Equal(t, pts[i:i+4], h.Children, "window %d keeps anchor order", i)
	}
}

func TestTriangleHullsSkipSparseWindow(t *testing.T) {
	pts := anchors(7)
	pts[1], pts[2], pts[3] = nil, nil, nil
	// windows starting at 0 and 1 keep a single anchor and are dropped
	groups := connect.TriangleHulls(pts...)
	assert.Len(t, groups, 2)
}

func TestFanHullsShareHub(t *testing.T) {
	pts := anchors(5)
	groups := connect.FanHulls(pts...)
	require.Len(t, groups, 3)
	for i, g := range groups {
		h := g.(csg.Boolean)
		require.Len(t, h.Children, 3)
		assert.Equal(t, pts[0], h.Children[0])
		assert.Equal(t, pts[i+1], h.Children[1])
		assert.Equal(t, pts[i+2], h.Children[2])
	}
	assert.Empty(t, connect.FanHulls(anchors(2)...))
}

func generator(t *testing.T, edit func(*params.Spec)) *connect.Generator {
	t.Helper()
	s := params.DefaultSpec()
	if edit != nil {
		edit(&s)
	}
	p, err := params.New(s)
	require.NoError(t, err)
	return connect.New(placement.New(p), shapes.New(p), nil)
}

func hullCount(n csg.Node) int {
	if b, ok := n.(csg.Boolean); ok && b.Op == csg.OpUnion {
		return len(b.Children)
	}
	if n == nil {
		return 0
	}
	return 1
}

func TestKeyConnectorsCoverGrid(t *testing.T) {
	g := generator(t, nil)
	// 20 row bridges, 18 column bridges, 15 diagonal bridges above the short row
	assert.Equal(t, 53, hullCount(g.KeyConnectors()))
}

func TestShortRowBridgesBuiltOnce(t *testing.T) {
	g := generator(t, nil)
	keys := g.KeyConnectors().(csg.Boolean).Children
	thumbs := g.ThumbConnectors().(csg.Boolean).Children
	for i, h := range thumbs {
		for _, k := range keys {
			assert.False(t, reflect.DeepEqual(h, k), "thumb hull %d repeats a grid hull", i)
		}
	}
}

func TestThumbConnectors(t *testing.T) {
	g := generator(t, nil)
	assert.Equal(t, 36, hullCount(g.ThumbConnectors()))
}

func TestPinkyConnectors(t *testing.T) {
	assert.Nil(t, generator(t, nil).PinkyConnectors())

	g := generator(t, func(s *params.Spec) { s.WidePinky = true })
	assert.Equal(t, 7, hullCount(g.PinkyConnectors()))
}

func TestConnectorsAreDeterministic(t *testing.T) {
	a := generator(t, nil)
	b := generator(t, nil)
	assert.Equal(t, a.KeyConnectors(), b.KeyConnectors())
	assert.Equal(t, a.ThumbConnectors(), b.ThumbConnectors())
}
