package connect

import (
	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/placement"
	"dactyl-gen/internal/shapes"
)

const (
	tl = shapes.TopLeft
	tr = shapes.TopRight
	bl = shapes.BottomLeft
	br = shapes.BottomRight
)

// ThumbConnectors webs the six thumb mounts together and to the main grid.
// The thumb cluster does not follow the grid curvature, so every anchor
// sequence is listed by hand.
func (g *Generator) ThumbConnectors() csg.Node {
	return g.union("thumb", g.thumbGroups())
}

func (g *Generator) thumbGroups() [][]csg.Node {
	p := g.p
	th := g.thumb
	seam := p.SeamColumn()
	a, b := seam-2, seam-1 // the two columns above the thumb cluster
	c, d := seam, seam+1   // the short last-row columns
	e := seam + 2          // first full column right of the short row
	corner, last := p.CornerRow, p.LastRow

	return [][]csg.Node{
		// top two
		TriangleHulls(
			th(placement.ThumbTL, tr),
			th(placement.ThumbTL, br),
			th(placement.ThumbTR, tl),
			th(placement.ThumbTR, bl),
		),
		// bottom two on the right
		TriangleHulls(
			th(placement.ThumbBR, tr),
			th(placement.ThumbBR, br),
			th(placement.ThumbMR, tl),
			th(placement.ThumbMR, bl),
		),
		// bottom two on the left
		TriangleHulls(
			th(placement.ThumbBL, tr),
			th(placement.ThumbBL, br),
			th(placement.ThumbML, tl),
			th(placement.ThumbML, bl),
		),
		// centers of the bottom four
		TriangleHulls(
			th(placement.ThumbBR, tl),
			th(placement.ThumbBL, bl),
			th(placement.ThumbBR, tr),
			th(placement.ThumbBL, br),
			th(placement.ThumbMR, tl),
			th(placement.ThumbML, bl),
			th(placement.ThumbMR, tr),
			th(placement.ThumbML, br),
		),
		// top two to the middle two, starting on the left
		TriangleHulls(
			th(placement.ThumbTL, tl),
			th(placement.ThumbML, tr),
			th(placement.ThumbTL, bl),
			th(placement.ThumbML, br),
			th(placement.ThumbTL, br),
			th(placement.ThumbMR, tr),
			th(placement.ThumbTR, bl),
			th(placement.ThumbMR, br),
			th(placement.ThumbTR, br),
		),
		// top two to the main keyboard, starting on the left
		TriangleHulls(
			th(placement.ThumbTL, tl),
			g.key(a, corner, bl),
			th(placement.ThumbTL, tr),
			g.key(a, corner, br),
			th(placement.ThumbTR, tl),
			g.key(b, corner, bl),
			th(placement.ThumbTR, tr),
			g.key(b, corner, br),
			g.key(c, last, tl),
			g.key(c, last, bl),
			th(placement.ThumbTR, tr),
			g.key(c, last, bl),
			th(placement.ThumbTR, br),
			g.key(c, last, br),
			g.key(d, last, bl),
			g.key(c, last, tr),
			g.key(d, last, tl),
			g.key(d, corner, bl),
			g.key(d, last, tr),
			g.key(d, corner, br),
			g.key(e, corner, bl),
		),
		// short row to the row above it
		TriangleHulls(
			g.key(b, corner, br),
			g.key(c, last, tl),
			g.key(c, corner, bl),
			g.key(c, last, tr),
			g.key(c, corner, br),
			g.key(d, corner, bl),
		),
		// short row to the first full column on its right
		TriangleHulls(
			g.key(d, last, tr),
			g.key(d, last, br),
			g.key(d, last, tr),
			g.key(e, corner, bl),
		),
	}
}
