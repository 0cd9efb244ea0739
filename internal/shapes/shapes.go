// Package shapes is the primitive shape library: switch plates, the corner
// posts used as hull anchors, keycaps for previews and screw-insert solids.
// Every shape is in its mount-local frame: centred on the switch, plate top
// at z = PlateThickness.
package shapes

import (
	"math"

	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/mathutil"
	"dactyl-gen/internal/params"
)

// Corner names one of the four post anchors of a mount.
type Corner uint8

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

func (c Corner) String() string {
	return [...]string{"tl", "tr", "bl", "br"}[c]
}

// Width selects the post spacing.
type Width uint8

const (
	// Standard posts sit on the 1u mount outline.
	Standard Width = iota
	// Wide posts reach the outline of a 1.5u pinky key.
	Wide
	// Thumb posts reach the outline of a vertical 1.5u thumb key.
	Thumb
)

// postAdj pulls each post inside the mount outline by half its size.
const postAdj = params.PostSize / 2

// Library builds shapes sized by a parameter set.
type Library struct {
	p *params.Params
}

func New(p *params.Params) Library {
	return Library{p: p}
}

// PostZ is the height of every post centre.
func PostZ() float64 {
	return params.PlateThickness - params.WebThickness/2
}

// WebPost is a post at the mount centre.
func (l Library) WebPost() csg.Node {
	return csg.Translate(mathutil.Vec3{0, 0, PostZ()},
		csg.Box(params.PostSize, params.PostSize, params.WebThickness))
}

// PostOffset is the mount-local centre of a corner post.
func (l Library) PostOffset(c Corner, w Width) mathutil.Vec3 {
	hx, hy := l.p.MountWidth/2, l.p.MountHeight/2
	switch w {
	case Wide:
		hx = l.p.MountWidth / 1.2
	case Thumb:
		hy = l.p.MountHeight / 1.15
	}
	x, y := hx-postAdj, hy-postAdj
	switch c {
	case TopLeft:
		x = -x
	case BottomLeft:
		x, y = -x, -y
	case BottomRight:
		y = -y
	}
	return mathutil.Vec3{x, y, PostZ()}
}

// Post is the corner post of the given width.
func (l Library) Post(c Corner, w Width) csg.Node {
	off := l.PostOffset(c, w)
	off[2] = 0
	return csg.Translate(off, l.WebPost())
}

// SinglePlate is a 1u switch mount: two side walls and two end walls
// around the switch hole, optional retention nubs on the sides.
func (l Library) SinglePlate() csg.Node {
	t := params.PlateThickness
	top := csg.Translate(mathutil.Vec3{0, 0.75 + params.KeyswitchHeight/2, t / 2},
		csg.Box(params.KeyswitchWidth+3, 1.5, t))
	left := csg.Translate(mathutil.Vec3{0.75 + params.KeyswitchWidth/2, 0, t / 2},
		csg.Box(1.5, params.KeyswitchHeight+3, t))

	var nub csg.Node
	if l.p.SideNubs {
		nub = csg.Hull(
			csg.Translate(mathutil.Vec3{params.KeyswitchWidth / 2, 0, 1},
				csg.RotateX(math.Pi/2, csg.Cylinder(1, 2.75, l.p.Resolution))),
			csg.Translate(mathutil.Vec3{0.75 + params.KeyswitchWidth/2, 0, t / 2},
				csg.Box(1.5, 2.75, t)),
		)
	}
	half := csg.Union(top, left, nub)
	return csg.Union(half, csg.Mirror(mathutil.Vec3{1, 0, 0}, csg.Mirror(mathutil.Vec3{0, 1, 0}, half)))
}

// WidePlate is the 1.5u pinky mount: a single plate with side fillers out
// to the wide posts.
func (l Library) WidePlate() csg.Node {
	fill := l.p.MountWidth/1.2 - l.p.MountWidth/2
	side := csg.Translate(mathutil.Vec3{l.p.MountWidth/2 + fill/2, 0, params.PlateThickness / 2},
		csg.Box(fill, l.p.MountHeight, params.PlateThickness))
	return csg.Union(l.SinglePlate(), side, csg.Mirror(mathutil.Vec3{1, 0, 0}, side))
}

// LargerPlate extends a thumb mount to the length of a 1.5u key.
func (l Library) LargerPlate() csg.Node {
	h := (params.SADoubleLength - l.p.MountHeight) / 3
	top := csg.Translate(mathutil.Vec3{0, (h + l.p.MountHeight) / 2, params.PlateThickness - params.WebThickness/2},
		csg.Box(l.p.MountWidth, h, params.WebThickness))
	return csg.Union(top, csg.Mirror(mathutil.Vec3{0, 1, 0}, top))
}

// ThumbPlate is the vertical 1.5u plate used by the two top thumb keys.
func (l Library) ThumbPlate() csg.Node {
	return csg.Union(csg.RotateZ(math.Pi/2, l.SinglePlate()), l.LargerPlate())
}

// capSlab is a thin square slab used as one cross-section of a keycap hull.
func capSlab(w, h, z float64) csg.Node {
	return csg.Translate(mathutil.Vec3{0, 0, z}, csg.Square(w, h, 0.1))
}

// Keycap is a cosmetic SA keycap of the given width in units (1 or 1.5).
func (l Library) Keycap(units float64) csg.Node {
	lift := mathutil.Vec3{0, 0, 5 + params.PlateThickness}
	if units > 1 {
		return csg.Translate(lift, csg.Hull(
			capSlab(18.25, 28, 0.05),
			capSlab(17, 25.5, 6),
			capSlab(12, 22, 12),
		))
	}
	return csg.Translate(lift, csg.Hull(
		capSlab(18.5, 18.5, 0.05),
		capSlab(17, 17, 6),
		capSlab(12, 12, 12),
	))
}

// ScrewInsert is a tapered insert pocket with a domed top; its base sits
// height/2 below the origin.
func (l Library) ScrewInsert(bottomRadius, topRadius, height float64) csg.Node {
	return csg.Union(
		csg.Cone(bottomRadius, topRadius, height, l.p.Resolution),
		csg.Translate(mathutil.Vec3{0, 0, height / 2}, csg.Sphere(topRadius, l.p.Resolution)),
	)
}
