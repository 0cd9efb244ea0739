package peripheral_test

import (
	"math"
	"testing"

	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/mathutil"
	"dactyl-gen/internal/params"
	"dactyl-gen/internal/peripheral"
	"dactyl-gen/internal/placement"
	"dactyl-gen/internal/shapes"
	"dactyl-gen/internal/walls"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*peripheral.Placer, *placement.Placer, *walls.Generator) {
	t.Helper()
	return setupWith(t, params.Default())
}

func setupWith(t *testing.T, p *params.Params) (*peripheral.Placer, *placement.Placer, *walls.Generator) {
	t.Helper()
	pl := placement.New(p)
	lib := shapes.New(p)
	w := walls.New(pl, lib, -40, nil)
	return peripheral.New(pl, lib, w), pl, w
}

func TestAnchorRules(t *testing.T) {
	pp, _, _ := setup(t)
	tests := []struct {
		name     string
		col, row int
		want     peripheral.Rule
	}{
		{"last column wins over top row", 5, 0, peripheral.RuleLastColumn},
		{"last column wins over bottom row", 5, 4, peripheral.RuleLastColumn},
		{"first column", 0, 4, peripheral.RuleFirstColumn},
		{"first column wins over top row", 0, 0, peripheral.RuleFirstColumn},
		{"top row", 3, 0, peripheral.RuleTopRow},
		{"bottom row", 1, 4, peripheral.RuleBottomRow},
		{"inner mount", 2, 2, peripheral.RuleDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rule := pp.Anchor(tt.col, tt.row)
			assert.Equal(t, tt.want, rule)
		})
	}
}

func TestAnchorPositions(t *testing.T) {
	pp, pl, w := setup(t)
	p := pl.Params()

	got, _ := pp.Anchor(p.LastCol, 1)
	want := pl.KeyPosition(p.LastCol, 1, w.Locate2(1, 0).Add(mathutil.Vec3{p.MountWidth / 2, 0, 0}))
	assert.True(t, want.ApproxEqual(got, 1e-9))

	got, _ = pp.Anchor(0, 2)
	want = pl.LeftKeyPosition(2, 0).Add(w.Locate3(-1, 0))
	assert.True(t, want.ApproxEqual(got, 1e-9))

	top, _ := pp.Anchor(3, 0)
	inner, _ := pp.Anchor(3, 1)
	assert.Greater(t, top[1], inner[1])
}

func TestScrewInsertRestsOnGround(t *testing.T) {
	pp, _, _ := setup(t)
	n := pp.ScrewInsert(3, 0, 2, 1.5, 4, mathutil.Vec3{1, 2, 0})
	b := csg.Bounds(n)
	assert.InDelta(t, 0, b.Min[2], 1e-9)

	a, _ := pp.Anchor(3, 0)
	c, ok := csg.Locate(n)
	require.True(t, ok)
	assert.InDelta(t, a[0]+1, c[0], 1e-9)
	assert.InDelta(t, a[1]+2, c[1], 1e-9)
	assert.InDelta(t, 2, c[2], 1e-9)
}

func TestInsertSets(t *testing.T) {
	pp, _, _ := setup(t)
	require.Len(t, pp.Sites(), 6)

	holes := pp.InsertHoles().(csg.Boolean)
	assert.Len(t, holes.Children, 6)

	hb := csg.Bounds(pp.InsertHoles())
	ob := csg.Bounds(pp.InsertOuters())
	assert.Less(t, hb.Max[2], ob.Max[2])
	assert.Less(t, ob.Min[0], hb.Min[0])

	sb := csg.Bounds(pp.ScrewHoles(30))
	assert.InDelta(t, 0, sb.Min[2], 1e-9)
	assert.Greater(t, sb.Max[2], 30.0)
}

// flatDist is the xy distance from v to segment ab.
func flatDist(v, a, b mathutil.Vec3) float64 {
	v[2], a[2], b[2] = 0, 0, 0
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return v.Sub(a).Len()
	}
	t := math.Max(0, math.Min(1, v.Sub(a).Dot(ab)/l2))
	return v.Sub(a.Add(ab.Scale(t))).Len()
}

func TestInsertsTouchWalls(t *testing.T) {
	wide := params.DefaultSpec()
	wide.WidePinky = true
	wp, err := params.New(wide)
	require.NoError(t, err)

	for name, p := range map[string]*params.Params{"default": params.Default(), "wide pinky": wp} {
		t.Run(name, func(t *testing.T) {
			pp, _, w := setupWith(t, p)
			outer := peripheral.InsertBottomRadius + peripheral.InsertWall
			for _, site := range pp.Sites() {
				c := pp.SiteCenter(site)
				assert.Zero(t, c[2])

				nearest := math.Inf(1)
				for _, seg := range w.Segments() {
					nearest = math.Min(nearest, flatDist(c, w.Outer(seg.A), w.Outer(seg.B)))
				}
				assert.Less(t, nearest, outer, "site (%d,%d) is %.1f mm from the outer wall", site.Col, site.Row, nearest)
			}
		})
	}
}

func TestInsertOutersRestOnGround(t *testing.T) {
	pp, _, _ := setup(t)
	outers := pp.InsertOuters().(csg.Boolean)
	sites := pp.Sites()
	require.Len(t, outers.Children, len(sites))
	for i, n := range outers.Children {
		b := csg.Bounds(n)
		assert.InDelta(t, 0, b.Min[2], 1e-9)
		c, ok := csg.Locate(n)
		require.True(t, ok)
		want := pp.SiteCenter(sites[i])
		assert.InDelta(t, want[0], c[0], 1e-9)
		assert.InDelta(t, want[1], c[1], 1e-9)
	}
}

func TestConnectorHoldersSitOnGround(t *testing.T) {
	pp, _, _ := setup(t)
	for name, n := range map[string]csg.Node{
		"usb holder":  pp.USBHolder(),
		"trrs holder": pp.TRRSHolder(),
	} {
		b := csg.Bounds(n)
		assert.InDelta(t, 0, b.Min[2], 1e-9, name)
	}

	usb := pp.USBPosition()
	trrs := pp.TRRSPosition()
	assert.InDelta(t, usb[0]-13.6, trrs[0], 1e-9)
	assert.Equal(t, usb[1], trrs[1])
}

func TestProMicroHolderSurroundsSpace(t *testing.T) {
	pp, _, _ := setup(t)
	holder := csg.Bounds(pp.ProMicroHolder())
	space := csg.Bounds(pp.ProMicroSpace())
	assert.InDelta(t, holder.Min[0], space.Min[0], 1e-9)
	assert.InDelta(t, holder.Min[1], space.Min[1], 1e-9)
	assert.Greater(t, holder.Max[0], space.Max[0])
	assert.InDelta(t, holder.Min[2], space.Min[2], 1e-9)
}
