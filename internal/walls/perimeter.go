package walls

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

// Segment is one perimeter brace between two sides.
type Segment struct {
	Name string
	A, B Side
}

// CaseWalls is the complete perimeter: right, back, left and front edges
// of the grid, the thumb cluster boundary and the transition hulls where
// the two meet.
func (g *Generator) CaseWalls() csg.Node {
	segs := g.Segments()
	parts := make([]csg.Node, 0, len(segs)+8)
	for _, s := range segs {
		parts = append(parts, g.Brace(s.A, s.B))
	}
	parts = append(parts, g.LeftWebs()...)
	parts = append(parts, g.ThumbTransitions()...)
	g.log.Debug("case walls built", "braces", len(segs))
	return csg.Union(parts...)
}

// Segments lists the braces of the perimeter walk in order.
func (g *Generator) Segments() []Segment {
	var segs []Segment
	segs = append(segs, g.RightWall()...)
	segs = append(segs, g.BackWall()...)
	segs = append(segs, g.LeftWall()...)
	segs = append(segs, g.FrontWall()...)
	segs = append(segs, g.ThumbWalls()...)
	segs = append(segs, g.PinkyWalls()...)
	return segs
}

// RightWall runs down the outer edge of the last column.
func (g *Generator) RightWall() []Segment {
	p := g.p
	col := p.LastCol
	edge := g.Key
	if p.WidePinky {
		edge = g.WideKey
	}

	segs := []Segment{{"right corner top", g.Key(col, 0, 0, 1, tr), edge(col, 0, 1, 0, tr)}}
	for row := 0; row < p.LastRow; row++ {
		segs = append(segs, Segment{"right", edge(col, row, 1, 0, tr), edge(col, row, 1, 0, br)})
	}
	for row := 1; row < p.LastRow; row++ {
		segs = append(segs, Segment{"right gap", edge(col, row-1, 1, 0, br), edge(col, row, 1, 0, tr)})
	}
	return append(segs, Segment{"right corner bottom", g.Key(col, p.CornerRow, 0, -1, br), edge(col, p.CornerRow, 1, 0, br)})
}

// BackWall runs along the top edge of row 0.
func (g *Generator) BackWall() []Segment {
	var segs []Segment
	for col := 0; col < g.p.Columns; col++ {
		segs = append(segs, Segment{"back", g.Key(col, 0, 0, 1, tl), g.Key(col, 0, 0, 1, tr)})
	}
	for col := 1; col < g.p.Columns; col++ {
		segs = append(segs, Segment{"back gap", g.Key(col, 0, 0, 1, tl), g.Key(col-1, 0, 0, 1, tr)})
	}
	return segs
}

// LeftWall runs down the synthetic left-key mounts beside column 0.
func (g *Generator) LeftWall() []Segment {
	p := g.p
	var segs []Segment
	for row := 0; row < p.LastRow; row++ {
		segs = append(segs, Segment{"left", g.Left(row, 1, -1, 0), g.Left(row, -1, -1, 0)})
	}
	for row := 1; row < p.LastRow; row++ {
		segs = append(segs, Segment{"left gap", g.Left(row-1, -1, -1, 0), g.Left(row, 1, -1, 0)})
	}
	return append(segs,
		Segment{"left corner", g.Key(0, 0, 0, 1, tl), g.Left(0, 1, 0, 1)},
		Segment{"left corner turn", g.Left(0, 1, 0, 1), g.Left(0, 1, -1, 0)},
	)
}

// LeftWebs fills the gap between column 0 and the left-key mounts.
func (g *Generator) LeftWebs() []csg.Node {
	p := g.p
	key := func(col, row int, c shapes.Corner) csg.Node { return g.pl.KeyPlace(col, row, g.lib.Post(c, shapes.Standard)) }
	left := func(row int, dir float64) csg.Node { return g.pl.LeftKeyPlace(row, dir, g.lib.WebPost()) }

	var webs []csg.Node
	for row := 0; row < p.LastRow; row++ {
		webs = append(webs, csg.Hull(key(0, row, tl), key(0, row, bl), left(row, 1), left(row, -1)))
	}
	for row := 1; row < p.LastRow; row++ {
		webs = append(webs, csg.Hull(key(0, row, tl), key(0, row-1, bl), left(row, 1), left(row-1, -1)))
	}
	return webs
}

// FrontWall runs along the bottom edge from the short row to the last column.
func (g *Generator) FrontWall() []Segment {
	p := g.p
	d := p.SeamColumn() + 1 // right column of the short row
	e := d + 1
	segs := []Segment{
		{"front short row", g.Key(d, p.LastRow, 0, -1, bl), g.Key(d, p.LastRow, 0.5, -1, br)},
		{"front step", g.Key(d, p.LastRow, 0.5, -1, br), g.Key(e, p.CornerRow, 1, -1, bl)},
	}
	for col := e; col < p.Columns; col++ {
		segs = append(segs, Segment{"front", g.Key(col, p.CornerRow, 0, -1, bl), g.Key(col, p.CornerRow, 0, -1, br)})
	}
	for col := e + 1; col < p.Columns; col++ {
		segs = append(segs, Segment{"front gap", g.Key(col, p.CornerRow, 0, -1, bl), g.Key(col-1, p.CornerRow, 0, -1, br)})
	}
	return segs
}

// ThumbWalls bounds the thumb cluster: outer walls, corners and the
// tweeners between neighbouring thumb mounts.
func (g *Generator) ThumbWalls() []Segment {
	th := g.Thumb
	d := g.p.SeamColumn() + 1
	return []Segment{
		{"thumb", th(placement.ThumbMR, 0, -1, br), th(placement.ThumbTR, 0, -1, br)},
		{"thumb", th(placement.ThumbMR, 0, -1, br), th(placement.ThumbMR, 0, -1, bl)},
		{"thumb", th(placement.ThumbBR, 0, -1, br), th(placement.ThumbBR, 0, -1, bl)},
		{"thumb", th(placement.ThumbML, -0.3, 1, tr), th(placement.ThumbML, 0, 1, tl)},
		{"thumb", th(placement.ThumbBL, 0, 1, tr), th(placement.ThumbBL, 0, 1, tl)},
		{"thumb", th(placement.ThumbBR, -1, 0, tl), th(placement.ThumbBR, -1, 0, bl)},
		{"thumb", th(placement.ThumbBL, -1, 0, tl), th(placement.ThumbBL, -1, 0, bl)},
		{"thumb corner", th(placement.ThumbBR, -1, 0, bl), th(placement.ThumbBR, 0, -1, bl)},
		{"thumb corner", th(placement.ThumbBL, -1, 0, tl), th(placement.ThumbBL, 0, 1, tl)},
		{"thumb tweener", th(placement.ThumbMR, 0, -1, bl), th(placement.ThumbBR, 0, -1, br)},
		{"thumb tweener", th(placement.ThumbML, 0, 1, tl), th(placement.ThumbBL, 0, 1, tr)},
		{"thumb tweener", th(placement.ThumbBL, -1, 0, bl), th(placement.ThumbBR, -1, 0, tl)},
		{"thumb tweener", th(placement.ThumbTR, 0, -1, br), g.Key(d, g.p.LastRow, 0, -1, bl)},
	}
}

// PinkyWalls closes the ends of the 1.5u pinky column; nil unless WidePinky.
func (g *Generator) PinkyWalls() []Segment {
	p := g.p
	if !p.WidePinky {
		return nil
	}
	col := p.LastCol
	return []Segment{
		{"pinky bottom", g.Key(col, p.CornerRow, 0, -1, br), g.WideKey(col, p.CornerRow, 0, -1, br)},
		{"pinky top", g.Key(col, 0, 0, 1, tr), g.WideKey(col, 0, 0, 1, tr)},
	}
}

// ThumbTransitions are the hand-built hulls joining the left wall, the
// first grid column and the top-left thumb mount. The two clusters have
// different pitch and curvature, so no brace rule covers this seam.
func (g *Generator) ThumbTransitions() []csg.Node {
	p := g.p
	row := p.CornerRow
	web := g.lib.WebPost()
	left := func(n csg.Node) csg.Node { return g.pl.LeftKeyPlace(row, -1, n) }
	ml := func(n csg.Node) csg.Node { return g.pl.ThumbPlace(placement.ThumbML, n) }
	mlPost := g.lib.Post(tr, shapes.Standard)
	tlPost := g.pl.ThumbPlace(placement.ThumbTL, g.lib.Post(tl, shapes.Thumb))
	keyBL := g.lib.Post(bl, shapes.Standard)

	left2 := left(csg.Translate(g.Locate2(-1, 0), web))
	left3 := left(csg.Translate(g.Locate3(-1, 0), web))
	ml2 := ml(csg.Translate(g.Locate2(-0.3, 1), mlPost))
	ml3 := ml(csg.Translate(g.Locate3(-0.3, 1), mlPost))

	return []csg.Node{
		// ground the wall stub between the left wall and the thumb cluster
		g.BottomHull(left2, left3, ml2, ml3),
		// the stub itself, up to the top-left thumb post
		csg.Hull(left2, left3, ml2, ml3, tlPost),
		// left wall bottom corner to the thumb
		csg.Hull(
			left(web),
			left(csg.Translate(g.Locate1(-1, 0), web)),
			left2,
			left3,
			tlPost,
		),
		// first column bottom-left corner to the thumb
		csg.Hull(
			left(web),
			left(csg.Translate(g.Locate1(-1, 0), web)),
			g.pl.KeyPlace(0, row, keyBL),
			g.pl.KeyPlace(0, row, csg.Translate(g.Locate1(-1, 0), keyBL)),
			tlPost,
		),
		// middle-left thumb top edge to the top-left thumb
		csg.Hull(
			ml(mlPost),
			ml(csg.Translate(g.Locate1(-0.3, 1), mlPost)),
			ml2,
			ml3,
			tlPost,
		),
	}
}
