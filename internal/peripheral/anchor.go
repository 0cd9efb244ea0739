// Package peripheral positions mounting hardware and connector cavities
// against the computed case edges.
package peripheral

import (
	"fmt"

	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/mathutil"
	"dactyl-gen/internal/params"
	"dactyl-gen/internal/placement"
	"dactyl-gen/internal/shapes"
	"dactyl-gen/internal/walls"
)

// Rule names which edge an anchor was taken from.
type Rule int

const (
	RuleLastColumn  Rule = iota // right edge of the last column
	RuleFirstColumn             // left edge, through the left-key pose
	RuleTopRow                  // top edge of row 0
	RuleBottomRow               // bottom edge of the last row
	RuleDefault                 // right edge of an inner mount
)

var ruleNames = [...]string{"last-column", "first-column", "top-row", "bottom-row", "default"}

func (r Rule) String() string {
	if r < 0 || int(r) >= len(ruleNames) {
		return fmt.Sprintf("Rule(%d)", int(r))
	}
	return ruleNames[r]
}

// Placer anchors peripherals for one layout.
type Placer struct {
	p   *params.Params
	pl  *placement.Placer
	lib shapes.Library
	w   *walls.Generator
}

func New(pl *placement.Placer, lib shapes.Library, w *walls.Generator) *Placer {
	return &Placer{p: pl.Params(), pl: pl, lib: lib, w: w}
}

// Anchor returns the case-edge point nearest (col, row) together with the
// rule that chose it. Exactly one rule applies to any grid coordinate.
func (pp *Placer) Anchor(col, row int) (mathutil.Vec3, Rule) {
	p := pp.p
	halfW := mathutil.Vec3{p.MountWidth / 2, 0, 0}
	halfH := mathutil.Vec3{0, p.MountHeight / 2, 0}

	switch {
	case col == p.LastCol:
		return pp.pl.KeyPosition(col, row, pp.w.Locate2(1, 0).Add(halfW)), RuleLastColumn
	case col == 0:
		return pp.pl.LeftKeyPosition(row, 0).Add(pp.w.Locate3(-1, 0)), RuleFirstColumn
	case row == 0:
		return pp.pl.KeyPosition(col, row, pp.w.Locate2(0, 1).Add(halfH)), RuleTopRow
	case row >= p.LastRow:
		return pp.pl.KeyPosition(col, row, pp.w.Locate2(0, -1).Sub(halfH)), RuleBottomRow
	default:
		return pp.pl.KeyPosition(col, row, pp.w.Locate2(1, 0).Add(halfW)), RuleDefault
	}
}

// Ground drops the anchor of (col, row) to the ground, moves it by the
// xy offset and lifts it so a shape of the given height rests on z=0.
func (pp *Placer) Ground(col, row int, offset mathutil.Vec3, height float64) mathutil.Vec3 {
	a, _ := pp.Anchor(col, row)
	return offset.Add(mathutil.Vec3{a[0], a[1], height / 2})
}

// ScrewInsert places an insert shape on the ground below the anchor of (col, row).
func (pp *Placer) ScrewInsert(col, row int, bottomRadius, topRadius, height float64, offset mathutil.Vec3) csg.Node {
	return csg.Translate(pp.Ground(col, row, offset, height),
		pp.lib.ScrewInsert(bottomRadius, topRadius, height))
}
