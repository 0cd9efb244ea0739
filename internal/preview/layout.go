// Package preview draws a top-down plot of a layout: the wall footprint,
// every mount outline shaded by its tilt, and the insert sites.
package preview

import (
	"dactyl-gen/internal/assembly"
	"dactyl-gen/internal/mathutil"
	"dactyl-gen/internal/placement"
	"dactyl-gen/internal/shapes"
)

// Mount is one key or thumb mount seen from above.
type Mount struct {
	Corners [4]mathutil.Vec3 // TL, TR, BR, BL in world space
	Normal  mathutil.Vec3    // plate normal
	Thumb   bool
}

// Layout holds the world-space geometry the plot is drawn from.
type Layout struct {
	Outline []mathutil.Vec3
	Mounts  []Mount
	Inserts []mathutil.Vec3
}

var up = mathutil.Vec3{0, 0, 1}

// corners lists the post corners in drawing order.
var corners = [4]shapes.Corner{shapes.TopLeft, shapes.TopRight, shapes.BottomRight, shapes.BottomLeft}

func mount(lib shapes.Library, w shapes.Width, pose mathutil.Pose, thumb bool) Mount {
	m := Mount{Normal: pose.R.MulVec3(up), Thumb: thumb}
	for i, c := range corners {
		m.Corners[i] = pose.Apply(lib.PostOffset(c, w))
	}
	return m
}

// NewLayout collects the plot geometry from a built layout.
func NewLayout(b *assembly.Builder) Layout {
	p := b.Params()
	pl := b.Placer()
	lib := shapes.New(p)

	var l Layout
	l.Outline = b.Walls().Outline()

	for _, k := range pl.Keys() {
		w := shapes.Standard
		if p.WidePinky && k.Col == p.LastCol {
			w = shapes.Wide
		}
		l.Mounts = append(l.Mounts, mount(lib, w, pl.KeyPose(k.Col, k.Row), false))
	}
	for _, t := range placement.Thumbs {
		w := shapes.Standard
		if t.Wide() {
			w = shapes.Thumb
		}
		l.Mounts = append(l.Mounts, mount(lib, w, pl.ThumbPose(t), true))
	}

	pp := b.Peripherals()
	for _, s := range pp.Sites() {
		l.Inserts = append(l.Inserts, pp.SiteCenter(s))
	}
	return l
}

// Bounds is the xy extent of everything in the layout.
func (l Layout) Bounds() (lo, hi mathutil.Vec3) {
	first := true
	add := func(v mathutil.Vec3) {
		v[2] = 0
		if first {
			lo, hi, first = v, v, false
			return
		}
		lo, hi = lo.Min(v), hi.Max(v)
	}
	for _, v := range l.Outline {
		add(v)
	}
	for _, m := range l.Mounts {
		for _, v := range m.Corners {
			add(v)
		}
	}
	for _, v := range l.Inserts {
		add(v)
	}
	return lo, hi
}
