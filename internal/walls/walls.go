// Package walls builds the sloped case walls around the key and thumb
// clusters. Each wall brace hulls two mount posts with offset copies of
// themselves and drops the outer copies onto the ground so the shell is
// closed at the bottom.
package walls

import (
	"log/slog"

	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/mathutil"
	"dactyl-gen/internal/params"
	"dactyl-gen/internal/placement"
	"dactyl-gen/internal/shapes"
)

// Side is one end of a wall brace: a placement, the outward direction in
// the xy plane and the post to offset.
type Side struct {
	Place placement.Func
	DX    float64
	DY    float64
	Post  csg.Node
}

// Generator builds walls for one layout.
type Generator struct {
	p   *params.Params
	pl  *placement.Placer
	lib shapes.Library
	log *slog.Logger

	// Floor is the z at which bottom hulls put their ground slab. It must
	// be at or below both z=0 and the lowest wall point.
	Floor float64
}

func New(pl *placement.Placer, lib shapes.Library, floor float64, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{p: pl.Params(), pl: pl, lib: lib, log: log, Floor: floor}
}

// Locate1 is the inward seam offset, one wall thickness out and 1 mm down.
func (g *Generator) Locate1(dx, dy float64) mathutil.Vec3 {
	return mathutil.Vec3{dx * g.p.WallThickness, dy * g.p.WallThickness, -1}
}

// Locate2 is the sloped outward offset.
func (g *Generator) Locate2(dx, dy float64) mathutil.Vec3 {
	return mathutil.Vec3{dx * g.p.WallXYOffset, dy * g.p.WallXYOffset, g.p.WallZOffset}
}

// Locate3 is Locate2 thickened by one wall thickness.
func (g *Generator) Locate3(dx, dy float64) mathutil.Vec3 {
	d := g.p.WallXYOffset + g.p.WallThickness
	return mathutil.Vec3{dx * d, dy * d, g.p.WallZOffset}
}

// BottomHull hulls the given shapes with their projection onto the ground.
// The slab sits at Floor so the hull always reaches below z=0.
func (g *Generator) BottomHull(shapes ...csg.Node) csg.Node {
	slab := csg.Translate(mathutil.Vec3{0, 0, g.Floor},
		csg.Project(csg.Union(shapes...), params.BottomSlab))
	return csg.Hull(append(shapes, slab)...)
}

// offsets places the post of s at its three wall offsets.
func (g *Generator) offsets(s Side) (l1, l2, l3 csg.Node) {
	l1 = s.Place(csg.Translate(g.Locate1(s.DX, s.DY), s.Post))
	l2 = s.Place(csg.Translate(g.Locate2(s.DX, s.DY), s.Post))
	l3 = s.Place(csg.Translate(g.Locate3(s.DX, s.DY), s.Post))
	return l1, l2, l3
}

// Brace is the wall between two sides: the hull of both posts and their
// three offsets, plus the bottom hull of the two outer offsets per side.
func (g *Generator) Brace(a, b Side) csg.Node {
	a1, a2, a3 := g.offsets(a)
	b1, b2, b3 := g.offsets(b)
	return csg.Union(
		csg.Hull(a.Place(a.Post), a1, a2, a3, b.Place(b.Post), b1, b2, b3),
		g.BottomHull(a2, a3, b2, b3),
	)
}

// Key is a side on a grid mount with a standard corner post.
func (g *Generator) Key(col, row int, dx, dy float64, c shapes.Corner) Side {
	return Side{Place: g.pl.Key(col, row), DX: dx, DY: dy, Post: g.lib.Post(c, shapes.Standard)}
}

// WideKey is a side on a grid mount with a 1.5u corner post.
func (g *Generator) WideKey(col, row int, dx, dy float64, c shapes.Corner) Side {
	return Side{Place: g.pl.Key(col, row), DX: dx, DY: dy, Post: g.lib.Post(c, shapes.Wide)}
}

// Left is a side on the synthetic left-wall mount with its centre post.
func (g *Generator) Left(row int, direction, dx, dy float64) Side {
	return Side{Place: g.pl.LeftKey(row, direction), DX: dx, DY: dy, Post: g.lib.WebPost()}
}

// Thumb is a side on a thumb mount; 1.5u mounts use thumb-width posts.
func (g *Generator) Thumb(t placement.Thumb, dx, dy float64, c shapes.Corner) Side {
	w := shapes.Standard
	if t.Wide() {
		w = shapes.Thumb
	}
	return Side{Place: g.pl.Thumb(t), DX: dx, DY: dy, Post: g.lib.Post(c, w)}
}
