// Package placement maps logical key coordinates onto the curved keyboard
// surface. Every placement exists in two forms that must agree: a shape
// form that wraps a CSG node in transform nodes and a point form that
// moves a bare coordinate with rotation matrices.
package placement

import (
	"math"

	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/mathutil"
	"dactyl-gen/internal/params"
)

// Func places a shape; it is the shape form of one mount's pose.
type Func func(csg.Node) csg.Node

// Key is a logical grid coordinate.
type Key struct {
	Col int
	Row int
}

// Placer computes key, thumb and left-wall poses for one parameter set.
type Placer struct {
	p *params.Params
}

func New(p *params.Params) *Placer {
	return &Placer{p: p}
}

// Params returns the parameter set the placer was built with.
func (pl *Placer) Params() *params.Params {
	return pl.p
}

// Keys lists the valid grid points, column by column.
func (pl *Placer) Keys() []Key {
	keys := make([]Key, 0, pl.p.Columns*pl.p.Rows)
	for col := 0; col < pl.p.Columns; col++ {
		for row := 0; row < pl.p.Rows; row++ {
			if pl.p.Valid(col, row) {
				keys = append(keys, Key{Col: col, Row: row})
			}
		}
	}
	return keys
}

// RowAngle is the rotation about x applied to row.
func (pl *Placer) RowAngle(row int) float64 {
	return pl.p.RowCurvature * float64(pl.p.CenterRow-row)
}

// ColumnAngle is the rotation about y applied to col by the curved styles.
func (pl *Placer) ColumnAngle(col int) float64 {
	return pl.p.ColumnCurvature * float64(pl.p.CenterCol-col)
}

// Steps is the ordered motion sequence that places (col, row).
func (pl *Placer) Steps(col, row int) []Step {
	p := pl.p
	rowAngle := pl.RowAngle(row)
	colAngle := pl.ColumnAngle(col)

	var steps []Step
	// A flat axis is the limit of infinite radius: the pivot rotation
	// degenerates to a pure translation by one pitch per key.
	rowCurve := func(r float64) {
		if p.RowFlat {
			steps = append(steps, translate(mathutil.Vec3{0, p.RowPitch * float64(p.CenterRow-row), 0}))
			return
		}
		steps = append(steps, pivot(r, rotateX(rowAngle))...)
	}

	switch p.ColumnStyle {
	case params.Orthographic:
		rowCurve(p.RowRadius)
		zDelta := 0.0
		if !p.ColumnFlat {
			zDelta = p.ColumnRadius * (1 - math.Cos(colAngle))
			steps = append(steps, rotateY(colAngle))
		}
		steps = append(steps,
			translate(mathutil.Vec3{-float64(col-p.CenterCol) * p.ColumnXDelta, 0, zDelta}),
			translate(p.ColumnOffset(col)),
		)
	case params.Fixed:
		fc := p.FixedColumn(col)
		steps = append(steps,
			rotateY(fc.Angle),
			translate(mathutil.Vec3{fc.X, 0, fc.Z}),
		)
		rowCurve(p.RowRadius + fc.Z)
		steps = append(steps,
			rotateY(p.FixedTenting),
			translate(mathutil.Vec3{0, p.ColumnOffset(col)[1], 0}),
		)
	default:
		rowCurve(p.RowRadius)
		if p.ColumnFlat {
			steps = append(steps, translate(mathutil.Vec3{-p.ColumnPitch * float64(p.CenterCol-col), 0, 0}))
		} else {
			steps = append(steps, pivot(p.ColumnRadius, rotateY(colAngle))...)
		}
		steps = append(steps, translate(p.ColumnOffset(col)))
	}

	return append(steps,
		rotateY(p.TentingAngle),
		translate(mathutil.Vec3{0, 0, p.ZOffset}),
	)
}

// KeyPlace moves a mount-local shape to (col, row).
func (pl *Placer) KeyPlace(col, row int, n csg.Node) csg.Node {
	return shapeForm(pl.Steps(col, row), n)
}

// KeyPosition moves a mount-local point to (col, row).
func (pl *Placer) KeyPosition(col, row int, v mathutil.Vec3) mathutil.Vec3 {
	return pointForm(pl.Steps(col, row), v)
}

// KeyPose is the rigid transform of (col, row).
func (pl *Placer) KeyPose(col, row int) mathutil.Pose {
	return poseForm(pl.Steps(col, row))
}

// Key returns the shape form of (col, row) as a Func.
func (pl *Placer) Key(col, row int) Func {
	return func(n csg.Node) csg.Node { return pl.KeyPlace(col, row, n) }
}

// LeftKeyPosition is the synthetic mount just outside column 0 used by
// the left wall. direction is +1 for the top edge, -1 for the bottom
// edge and 0 for the middle of row.
func (pl *Placer) LeftKeyPosition(row int, direction float64) mathutil.Vec3 {
	p := pl.p
	edge := pl.KeyPosition(0, row, mathutil.Vec3{-p.MountWidth / 2, direction * p.MountHeight / 2, 0})
	return edge.Sub(mathutil.Vec3{p.LeftWallXOffset, 0, p.LeftWallZOffset})
}

// LeftKeyPlace translates n to LeftKeyPosition; the left-key pose has no rotation.
func (pl *Placer) LeftKeyPlace(row int, direction float64, n csg.Node) csg.Node {
	return csg.Translate(pl.LeftKeyPosition(row, direction), n)
}

func (pl *Placer) LeftKey(row int, direction float64) Func {
	return func(n csg.Node) csg.Node { return pl.LeftKeyPlace(row, direction, n) }
}
