package walls

import (
	"math"
	"slices"

	"dactyl-gen/internal/connect"
	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/mathutil"
)

// Outer is the world position of the outer wall face for one side.
func (g *Generator) Outer(s Side) mathutil.Vec3 {
	v, _ := csg.Locate(s.Place(csg.Translate(g.Locate3(s.DX, s.DY), s.Post)))
	return v
}

// Mid is the world position of the wall centre line for one side,
// halfway between the sloped offset and the outer face.
func (g *Generator) Mid(s Side) mathutil.Vec3 {
	off := g.Locate2(s.DX, s.DY).Add(g.Locate3(s.DX, s.DY)).Scale(0.5)
	v, _ := csg.Locate(s.Place(csg.Translate(off, s.Post)))
	return v
}

// OnWall returns the ground point under the wall centre lines closest to
// v in the xy plane. Every brace grounds the hull of its two sides, so
// the returned point lies inside a wall footprint.
func (g *Generator) OnWall(v mathutil.Vec3) mathutil.Vec3 {
	v[2] = 0
	best, bestD := v, math.Inf(1)
	for _, s := range g.Segments() {
		a, b := g.Mid(s.A), g.Mid(s.B)
		a[2], b[2] = 0, 0
		q := closest(v, a, b)
		if d := q.Sub(v).Len(); d < bestD {
			best, bestD = q, d
		}
	}
	return best
}

// closest is the point of segment ab nearest to v.
func closest(v, a, b mathutil.Vec3) mathutil.Vec3 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return a
	}
	t := math.Max(0, math.Min(1, v.Sub(a).Dot(ab)/l2))
	return a.Add(ab.Scale(t))
}

// Outline returns the outer wall points of every perimeter brace,
// flattened to z=0, in the order the braces join them around the case.
// The walk starts at an open end of the brace chain and follows shared
// points; where the chain breaks it resumes at the nearest loose end.
func (g *Generator) Outline() []mathutil.Vec3 {
	var pts []mathutil.Vec3
	index := func(v mathutil.Vec3) int {
		v[2] = 0
		if i := slices.IndexFunc(pts, func(o mathutil.Vec3) bool { return o.ApproxEqual(v, 1e-9) }); i >= 0 {
			return i
		}
		pts = append(pts, v)
		return len(pts) - 1
	}

	var adj [][]int
	link := func(a, b int) {
		for len(adj) < len(pts) {
			adj = append(adj, nil)
		}
		if a == b || slices.Contains(adj[a], b) {
			return
		}
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}
	for _, s := range g.Segments() {
		a := index(g.Outer(s.A))
		b := index(g.Outer(s.B))
		link(a, b)
	}
	if len(pts) == 0 {
		return nil
	}

	seen := make([]bool, len(pts))
	open := func(i int) int {
		n := 0
		for _, j := range adj[i] {
			if !seen[j] {
				n++
			}
		}
		return n
	}
	// nearest unvisited point among candidates, or -1
	nearest := func(from mathutil.Vec3, ok func(int) bool) int {
		best, bestD := -1, math.Inf(1)
		for i, v := range pts {
			if seen[i] || !ok(i) {
				continue
			}
			if d := v.Sub(from).Len(); d < bestD {
				best, bestD = i, d
			}
		}
		return best
	}

	cur := slices.IndexFunc(adj, func(n []int) bool { return len(n) == 1 })
	if cur < 0 {
		cur = 0
	}
	out := make([]mathutil.Vec3, 0, len(pts))
	for cur >= 0 {
		seen[cur] = true
		out = append(out, pts[cur])

		next := -1
		if len(out) < len(pts) {
			next = nearest(pts[cur], func(j int) bool { return slices.Contains(adj[cur], j) })
			if next < 0 {
				next = nearest(pts[cur], func(j int) bool { return open(j) <= 1 })
			}
			if next < 0 {
				next = nearest(pts[cur], func(int) bool { return true })
			}
		}
		cur = next
	}
	return out
}

// Footprint fills the outline with a fan of thin slabs hubbed on the
// centroid, closing the fan back onto the first point.
func (g *Generator) Footprint(height float64) csg.Node {
	pts := g.Outline()
	if len(pts) < 3 {
		return nil
	}
	slab := csg.Box(g.p.WallThickness, g.p.WallThickness, height)
	at := func(v mathutil.Vec3) csg.Node {
		return csg.Translate(mathutil.Vec3{v[0], v[1], height / 2}, slab)
	}

	anchors := make([]csg.Node, 0, len(pts)+2)
	anchors = append(anchors, at(centroid(pts)))
	for _, v := range pts {
		anchors = append(anchors, at(v))
	}
	anchors = append(anchors, at(pts[0]))
	return csg.Union(connect.FanHulls(anchors...)...)
}

func centroid(pts []mathutil.Vec3) mathutil.Vec3 {
	var c mathutil.Vec3
	for _, v := range pts {
		c = c.Add(v)
	}
	return c.Scale(1 / float64(len(pts)))
}
