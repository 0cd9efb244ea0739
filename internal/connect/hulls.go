// Package connect bridges neighbouring key mounts with convex hulls so the
// top surface is continuous.
package connect

import (
	"dactyl-gen/internal/csg"
)

// window is the number of consecutive anchors joined by one triangle hull.
const window = 4

// TriangleHulls hulls every run of four consecutive anchors, stride one,
// and returns the max(0, N-3) groups in order. A window left with fewer
// than two non-nil anchors is skipped.
func TriangleHulls(anchors ...csg.Node) []csg.Node {
	if len(anchors) < window {
		return nil
	}
	groups := make([]csg.Node, 0, len(anchors)-window+1)
	for i := 0; i+window <= len(anchors); i++ {
		h, err := csg.NewHull(anchors[i : i+window]...)
		if err != nil {
			continue
		}
		groups = append(groups, h)
	}
	return groups
}

// FanHulls hulls each consecutive pair of anchors after the first against
// the first one, so every group shares a single reference point. It
// returns max(0, N-2) groups.
func FanHulls(anchors ...csg.Node) []csg.Node {
	if len(anchors) < 3 {
		return nil
	}
	hub := anchors[0]
	groups := make([]csg.Node, 0, len(anchors)-2)
	for i := 1; i+1 < len(anchors); i++ {
		h, err := csg.NewHull(hub, anchors[i], anchors[i+1])
		if err != nil {
			continue
		}
		groups = append(groups, h)
	}
	return groups
}
