package placement

import (
	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/mathutil"
)

// Thumb names one of the six thumb-cluster mounts.
type Thumb uint8

const (
	ThumbTR Thumb = iota // top right, 1.5u
	ThumbTL              // top left, 1.5u
	ThumbMR              // middle right
	ThumbML              // middle left
	ThumbBR              // bottom right
	ThumbBL              // bottom left
)

// Thumbs lists every thumb mount in layout order.
var Thumbs = []Thumb{ThumbTR, ThumbTL, ThumbMR, ThumbML, ThumbBR, ThumbBL}

func (t Thumb) String() string {
	return [...]string{"tr", "tl", "mr", "ml", "br", "bl"}[t]
}

// Wide reports whether the mount holds a 1.5u key.
func (t Thumb) Wide() bool {
	return t == ThumbTR || t == ThumbTL
}

type thumbMount struct {
	rot  [3]float64 // x, y, z rotations in degrees, applied in that order
	move mathutil.Vec3
}

// The thumb cluster is hand-tuned, not derived from the grid curvature.
var thumbMounts = [...]thumbMount{
	ThumbTR: {rot: [3]float64{10, -23, 10}, move: mathutil.Vec3{-12, -16, 3}},
	ThumbTL: {rot: [3]float64{10, -23, 10}, move: mathutil.Vec3{-32, -15, -2}},
	ThumbMR: {rot: [3]float64{-6, -34, 48}, move: mathutil.Vec3{-29, -40, -13}},
	ThumbML: {rot: [3]float64{6, -34, 40}, move: mathutil.Vec3{-51, -25, -12}},
	ThumbBR: {rot: [3]float64{-16, -33, 54}, move: mathutil.Vec3{-37.8, -55.3, -25.3}},
	ThumbBL: {rot: [3]float64{-4, -35, 52}, move: mathutil.Vec3{-56.3, -43.3, -23.5}},
}

// ThumbOrigin is the bottom-right corner of the key above the thumb
// cluster, shifted by the configured thumb offset.
func (pl *Placer) ThumbOrigin() mathutil.Vec3 {
	p := pl.p
	anchor := pl.KeyPosition(p.SeamColumn()-1, p.CornerRow, mathutil.Vec3{p.MountWidth / 2, -p.MountHeight / 2, 0})
	return anchor.Add(p.ThumbOffset)
}

// ThumbPlace rotates n about x, y then z and moves it into the cluster.
func (pl *Placer) ThumbPlace(t Thumb, n csg.Node) csg.Node {
	m := thumbMounts[t]
	n = csg.RotateX(mathutil.Deg2Rad(m.rot[0]), n)
	n = csg.RotateY(mathutil.Deg2Rad(m.rot[1]), n)
	n = csg.RotateZ(mathutil.Deg2Rad(m.rot[2]), n)
	n = csg.Translate(pl.ThumbOrigin(), n)
	return csg.Translate(m.move, n)
}

// ThumbPosition is the point form of ThumbPlace.
func (pl *Placer) ThumbPosition(t Thumb, v mathutil.Vec3) mathutil.Vec3 {
	return pl.ThumbPose(t).Apply(v)
}

// ThumbPose is the rigid transform of a thumb mount.
func (pl *Placer) ThumbPose(t Thumb) mathutil.Pose {
	m := thumbMounts[t]
	q := mathutil.EulerToQuat(mathutil.Deg2Rad(m.rot[0]), mathutil.Deg2Rad(m.rot[1]), mathutil.Deg2Rad(m.rot[2]))
	return mathutil.Pose{R: mathutil.QuatToMat3(q), T: pl.ThumbOrigin().Add(m.move)}
}

func (pl *Placer) Thumb(t Thumb) Func {
	return func(n csg.Node) csg.Node { return pl.ThumbPlace(t, n) }
}
