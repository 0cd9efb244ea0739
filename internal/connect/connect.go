package connect

import (
	"log/slog"

	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/params"
	"dactyl-gen/internal/placement"
	"dactyl-gen/internal/shapes"
)

// Generator builds the web between mounts of one layout.
type Generator struct {
	p   *params.Params
	pl  *placement.Placer
	lib shapes.Library
	log *slog.Logger
}

func New(pl *placement.Placer, lib shapes.Library, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{p: pl.Params(), pl: pl, lib: lib, log: log}
}

// key places a corner post on (col, row).
func (g *Generator) key(col, row int, c shapes.Corner) csg.Node {
	return g.pl.KeyPlace(col, row, g.lib.Post(c, shapes.Standard))
}

// wide places a 1.5u corner post on (col, row).
func (g *Generator) wide(col, row int, c shapes.Corner) csg.Node {
	return g.pl.KeyPlace(col, row, g.lib.Post(c, shapes.Wide))
}

// thumb places a post on a thumb mount; 1.5u mounts use thumb-width posts.
func (g *Generator) thumb(t placement.Thumb, c shapes.Corner) csg.Node {
	w := shapes.Standard
	if t.Wide() {
		w = shapes.Thumb
	}
	return g.pl.ThumbPlace(t, g.lib.Post(c, w))
}

func (g *Generator) union(name string, groups [][]csg.Node) csg.Node {
	var all []csg.Node
	for _, grp := range groups {
		all = append(all, grp...)
	}
	g.log.Debug("connectors built", "set", name, "hulls", len(all))
	return csg.Union(all...)
}

// KeyConnectors joins each full-row mount to its right, lower and
// diagonal neighbours. Bridges touching the short last row are left to
// ThumbConnectors, which lists them with the thumb seam.
func (g *Generator) KeyConnectors() csg.Node {
	p := g.p
	var groups [][]csg.Node

	// row connections
	for col := 0; col < p.Columns-1; col++ {
		for row := 0; row <= p.CornerRow; row++ {
			groups = append(groups, TriangleHulls(
				g.key(col+1, row, shapes.TopLeft),
				g.key(col, row, shapes.TopRight),
				g.key(col+1, row, shapes.BottomLeft),
				g.key(col, row, shapes.BottomRight),
			))
		}
	}

	// column connections
	for col := 0; col < p.Columns; col++ {
		for row := 0; row < p.CornerRow; row++ {
			groups = append(groups, TriangleHulls(
				g.key(col, row, shapes.BottomLeft),
				g.key(col, row, shapes.BottomRight),
				g.key(col, row+1, shapes.TopLeft),
				g.key(col, row+1, shapes.TopRight),
			))
		}
	}

	// diagonal connections
	for col := 0; col < p.Columns-1; col++ {
		for row := 0; row < p.CornerRow; row++ {
			groups = append(groups, TriangleHulls(
				g.key(col, row, shapes.BottomRight),
				g.key(col, row+1, shapes.TopRight),
				g.key(col+1, row, shapes.BottomLeft),
				g.key(col+1, row+1, shapes.TopLeft),
			))
		}
	}

	return g.union("keys", groups)
}

// PinkyConnectors joins the standard and wide posts of the 1.5u pinky
// column. It is nil unless WidePinky is set.
func (g *Generator) PinkyConnectors() csg.Node {
	p := g.p
	if !p.WidePinky {
		return nil
	}
	col := p.LastCol
	var groups [][]csg.Node
	for row := 0; row < p.LastRow; row++ {
		groups = append(groups, TriangleHulls(
			g.key(col, row, shapes.TopRight),
			g.wide(col, row, shapes.TopRight),
			g.key(col, row, shapes.BottomRight),
			g.wide(col, row, shapes.BottomRight),
		))
	}
	for row := 0; row < p.CornerRow; row++ {
		groups = append(groups, TriangleHulls(
			g.key(col, row, shapes.BottomRight),
			g.wide(col, row, shapes.BottomRight),
			g.key(col, row+1, shapes.TopRight),
			g.wide(col, row+1, shapes.TopRight),
		))
	}
	return g.union("pinky", groups)
}
