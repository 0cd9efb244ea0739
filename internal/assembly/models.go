package assembly

import (
	"context"

	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/mathutil"
	"dactyl-gen/internal/params"
)

var xAxis = mathutil.Vec3{1, 0, 0}

// KeyHoles is the union of every grid mount plate.
func (b *Builder) KeyHoles() csg.Node { return b.keyHoles }

// Thumbs is the union of the thumb mount plates.
func (b *Builder) Thumbs() csg.Node { return b.thumbs }

// shell is the case body: walls and the parts fused to them, minus the
// connector and insert cavities.
func (b *Builder) shell() csg.Node {
	pp := b.periph
	return csg.Difference(
		csg.Union(
			b.walls.CaseWalls(),
			pp.InsertOuters(),
			pp.ProMicroHolder(),
			pp.USBHolder(),
			pp.TRRSHolder(),
		),
		pp.USBHolderHole(),
		pp.USBJack(),
		pp.TRRSHole(),
		pp.InsertHoles(),
	)
}

// body is the uncut right-hand model.
func (b *Builder) body() csg.Node {
	return csg.Union(
		b.keyHoles,
		b.conn.PinkyConnectors(),
		b.conn.KeyConnectors(),
		b.thumbs,
		b.conn.ThumbConnectors(),
		b.shell(),
	)
}

// groundCut is a box covering everything of n below z=0.
func groundCut(n csg.Node, floor float64) csg.Node {
	bb := csg.Bounds(n)
	if bb.Empty() {
		return nil
	}
	const margin = 1
	low := min(bb.Min[2], floor) - margin
	if low >= 0 {
		return nil
	}
	size := bb.Max.Sub(bb.Min).Add(mathutil.Vec3{2 * margin, 2 * margin, 0})
	centre := bb.Min.Add(bb.Max).Scale(0.5)
	return csg.Translate(mathutil.Vec3{centre[0], centre[1], low / 2},
		csg.Box(size[0], size[1], -low))
}

// ModelRight is the right-hand case, cut flat at z=0.
func (b *Builder) ModelRight() csg.Node {
	body := b.body()
	return csg.Difference(body, groundCut(body, b.floor))
}

// ModelLeft mirrors the right-hand case about x=0.
func (b *Builder) ModelLeft() csg.Node {
	return csg.Mirror(xAxis, b.ModelRight())
}

// ScrewHoleHeight is tall enough for the plate screw holes to pass
// through every part of the case.
func (b *Builder) ScrewHoleHeight() float64 {
	bb := csg.Bounds(csg.Union(b.keyHoles, b.thumbs))
	if bb.Empty() {
		return params.PlateExtrude + 2
	}
	return max(bb.Max[2], params.PlateExtrude) + 2
}

// PlateRight is the flat bottom plate: the outline of the walls, the
// filled footprint and the insert bosses, extruded and drilled.
func (b *Builder) PlateRight() csg.Node {
	outline := csg.Union(
		b.walls.CaseWalls(),
		b.walls.Footprint(params.PlateExtrude),
		b.periph.InsertOuters(),
	)
	holes := csg.Translate(mathutil.Vec3{0, 0, -1}, b.periph.ScrewHoles(b.ScrewHoleHeight()))
	return csg.Difference(csg.Project(outline, params.PlateExtrude), holes)
}

// PlateLeft mirrors the right-hand plate about x=0.
func (b *Builder) PlateLeft() csg.Node {
	return csg.Mirror(xAxis, b.PlateRight())
}

// Caps places a cosmetic keycap on every mount.
func (b *Builder) Caps(ctx context.Context) (csg.Node, error) {
	keys, err := b.placeKeys(ctx, b.keyCap)
	if err != nil {
		return nil, err
	}
	return csg.Union(keys, b.placeThumbs(b.thumbCap)), nil
}

// Preview is the right-hand case with keycaps fitted.
func (b *Builder) Preview(ctx context.Context) (csg.Node, error) {
	caps, err := b.Caps(ctx)
	if err != nil {
		return nil, err
	}
	return csg.Union(b.ModelRight(), caps), nil
}
