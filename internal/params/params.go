// Package params holds the immutable parameter set every geometry
// component reads from.
//
// A Params value is only obtainable through New, which rejects invalid
// input up front; no placement or wall code re-validates anything.
package params

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"dactyl-gen/internal/mathutil"
)

// Switch and plate dimensions in millimetres.
const (
	KeyswitchWidth  = 14.4
	KeyswitchHeight = 14.4
	PlateThickness  = 4.0
	SAKeyHeight     = 12.7
	SADoubleLength  = 37.5
	WebThickness    = 3.5
	PostSize        = 0.1
	// PlateExtrude is the thickness of the flat bottom plate variant.
	PlateExtrude = 2.6
	// BottomSlab is the thickness of the ground slab used by bottom hulls.
	BottomSlab = 0.001
)

// flatEps is the |sin(angle/2)| below which a curvature axis counts as flat.
const flatEps = 1e-12

// ColumnStyle selects the column curvature model.
type ColumnStyle string

const (
	Standard     ColumnStyle = "standard"
	Orthographic ColumnStyle = "orthographic"
	Fixed        ColumnStyle = "fixed"
)

// FixedColumn is one row of the fixed column-style lookup table.
type FixedColumn struct {
	Angle float64 // rotation about y, radians
	X     float64
	Z     float64
}

// Spec is the raw, unvalidated input to New.
type Spec struct {
	Rows            int
	// Columns must be at least 5. The short last row takes columns 2 and
	// 3 beside the thumb cluster, and a full column must follow it.
	Columns         int
	RowCurvature    float64 // α, radians
	ColumnCurvature float64 // β, radians
	CenterRow       int
	CenterCol       int
	TentingAngle    float64
	ColumnOffsets   []mathutil.Vec3
	ColumnStyle     ColumnStyle
	FixedColumns    []FixedColumn
	FixedTenting    float64
	// LastRowColumns must be [2 3], the columns present in the last row.
	LastRowColumns  []int
	WidePinky       bool
	ThumbOffset     mathutil.Vec3
	WallThickness   float64
	WallXYOffset    float64
	WallZOffset     float64
	ZOffset         float64
	ExtraWidth      float64
	ExtraHeight     float64
	LeftWallXOffset float64
	LeftWallZOffset float64
	SideNubs        bool
	Resolution      int
}

// DefaultSpec is the classic 5×6 manuform layout.
func DefaultSpec() Spec {
	return Spec{
		Rows:            5,
		Columns:         6,
		RowCurvature:    math.Pi / 12,
		ColumnCurvature: math.Pi / 36,
		CenterRow:       2,
		CenterCol:       4,
		TentingAngle:    math.Pi / 12,
		ColumnOffsets: []mathutil.Vec3{
			{0, 0, 0},
			{0, 0, 0},
			{0, 2.82, -4.5},
			{0, 0, 0},
			{0, -12, 5.64},
			{0, -12, 5.64},
		},
		ColumnStyle: Standard,
		FixedColumns: []FixedColumn{
			{Angle: mathutil.Deg2Rad(10), X: -41.5, Z: 12.1},
			{Angle: mathutil.Deg2Rad(10), X: -22.5, Z: 8.3},
			{Angle: 0, X: 0, Z: 0},
			{Angle: 0, X: 20.3, Z: 5},
			{Angle: 0, X: 41.4, Z: 10.7},
			{Angle: mathutil.Deg2Rad(-15), X: 65.5, Z: 14.5},
			{Angle: mathutil.Deg2Rad(-15), X: 89.6, Z: 17.5},
		},
		LastRowColumns:  []int{2, 3},
		ThumbOffset:     mathutil.Vec3{6, -3, 7},
		WallThickness:   2,
		WallXYOffset:    5,
		WallZOffset:     -15,
		ZOffset:         9,
		ExtraWidth:      2.5,
		ExtraHeight:     1.0,
		LeftWallXOffset: 10,
		LeftWallZOffset: 3,
		Resolution:      30,
	}
}

// Params is a validated parameter set plus the values derived from it.
// It is never modified after New returns and may be shared across goroutines.
type Params struct {
	Rows            int
	Columns         int
	RowCurvature    float64
	ColumnCurvature float64
	CenterRow       int
	CenterCol       int
	TentingAngle    float64
	ColumnStyle     ColumnStyle
	FixedTenting    float64
	WidePinky       bool
	ThumbOffset     mathutil.Vec3
	WallThickness   float64
	WallXYOffset    float64
	WallZOffset     float64
	ZOffset         float64
	ExtraWidth      float64
	ExtraHeight     float64
	LeftWallXOffset float64
	LeftWallZOffset float64
	SideNubs        bool
	Resolution      int

	LastRow   int
	CornerRow int
	LastCol   int

	MountWidth   float64
	MountHeight  float64
	CapTopHeight float64

	// RowFlat and ColumnFlat mark zero curvature: the radius is infinite
	// and the corresponding rotation step is skipped.
	RowFlat      bool
	ColumnFlat   bool
	RowPitch     float64
	ColumnPitch  float64
	RowRadius    float64
	ColumnRadius float64
	ColumnXDelta float64

	columnOffsets  []mathutil.Vec3
	fixedColumns   []FixedColumn
	lastRowColumns []int
}

// New validates s and derives the placement constants.
// All violations are reported together; each matches ErrInvalidConfig.
func New(s Spec) (*Params, error) {
	if err := validate(s); err != nil {
		return nil, err
	}

	p := &Params{
		Rows:            s.Rows,
		Columns:         s.Columns,
		RowCurvature:    s.RowCurvature,
		ColumnCurvature: s.ColumnCurvature,
		CenterRow:       s.CenterRow,
		CenterCol:       s.CenterCol,
		TentingAngle:    s.TentingAngle,
		ColumnStyle:     s.ColumnStyle,
		FixedTenting:    s.FixedTenting,
		WidePinky:       s.WidePinky,
		ThumbOffset:     s.ThumbOffset,
		WallThickness:   s.WallThickness,
		WallXYOffset:    s.WallXYOffset,
		WallZOffset:     s.WallZOffset,
		ZOffset:         s.ZOffset,
		ExtraWidth:      s.ExtraWidth,
		ExtraHeight:     s.ExtraHeight,
		LeftWallXOffset: s.LeftWallXOffset,
		LeftWallZOffset: s.LeftWallZOffset,
		SideNubs:        s.SideNubs,
		Resolution:      s.Resolution,

		LastRow:   s.Rows - 1,
		CornerRow: s.Rows - 2,
		LastCol:   s.Columns - 1,

		MountWidth:   KeyswitchWidth + 3,
		MountHeight:  KeyswitchHeight + 3,
		CapTopHeight: PlateThickness + SAKeyHeight,

		columnOffsets:  slices.Clone(s.ColumnOffsets),
		fixedColumns:   slices.Clone(s.FixedColumns),
		lastRowColumns: slices.Clone(s.LastRowColumns),
	}
	slices.Sort(p.lastRowColumns)

	p.RowPitch = p.MountHeight + p.ExtraHeight
	p.ColumnPitch = p.MountWidth + p.ExtraWidth

	p.RowRadius, p.RowFlat = radius(p.RowPitch, s.RowCurvature, p.CapTopHeight)
	p.ColumnRadius, p.ColumnFlat = radius(p.ColumnPitch, s.ColumnCurvature, p.CapTopHeight)
	if p.ColumnFlat {
		// chord limit of -1 - r·sin(β) as β → 0
		p.ColumnXDelta = -1 - p.ColumnPitch
	} else {
		p.ColumnXDelta = -1 - p.ColumnRadius*math.Sin(s.ColumnCurvature)
	}

	return p, nil
}

// radius is (pitch/2)/sin(angle/2) + capHeight, or flat when the sine vanishes.
func radius(pitch, angle, capHeight float64) (float64, bool) {
	s := math.Sin(angle / 2)
	if math.Abs(s) < flatEps {
		return math.Inf(1), true
	}
	return (pitch/2)/s + capHeight, false
}

// MustNew is New for hard-coded parameter sets; it panics on error.
func MustNew(s Spec) *Params {
	p, err := New(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Default returns the validated DefaultSpec.
func Default() *Params {
	return MustNew(DefaultSpec())
}

// Spec returns a copy of the input the parameter set was built from.
func (p *Params) Spec() Spec {
	return Spec{
		Rows:            p.Rows,
		Columns:         p.Columns,
		RowCurvature:    p.RowCurvature,
		ColumnCurvature: p.ColumnCurvature,
		CenterRow:       p.CenterRow,
		CenterCol:       p.CenterCol,
		TentingAngle:    p.TentingAngle,
		ColumnOffsets:   slices.Clone(p.columnOffsets),
		ColumnStyle:     p.ColumnStyle,
		FixedColumns:    slices.Clone(p.fixedColumns),
		FixedTenting:    p.FixedTenting,
		LastRowColumns:  slices.Clone(p.lastRowColumns),
		WidePinky:       p.WidePinky,
		ThumbOffset:     p.ThumbOffset,
		WallThickness:   p.WallThickness,
		WallXYOffset:    p.WallXYOffset,
		WallZOffset:     p.WallZOffset,
		ZOffset:         p.ZOffset,
		ExtraWidth:      p.ExtraWidth,
		ExtraHeight:     p.ExtraHeight,
		LeftWallXOffset: p.LeftWallXOffset,
		LeftWallZOffset: p.LeftWallZOffset,
		SideNubs:        p.SideNubs,
		Resolution:      p.Resolution,
	}
}

// ColumnOffset is the static per-column offset; columns without an entry get zero.
func (p *Params) ColumnOffset(col int) mathutil.Vec3 {
	if col < 0 || col >= len(p.columnOffsets) {
		return mathutil.Vec3{}
	}
	return p.columnOffsets[col]
}

// FixedColumn returns the fixed-style table entry for col.
func (p *Params) FixedColumn(col int) FixedColumn {
	if col < 0 || col >= len(p.fixedColumns) {
		return FixedColumn{}
	}
	return p.fixedColumns[col]
}

// LastRowColumns returns the sorted columns populated in the last row.
func (p *Params) LastRowColumns() []int {
	return slices.Clone(p.lastRowColumns)
}

// SeamColumn is the first last-row column; the thumb cluster sits
// below the two columns to its left.
func (p *Params) SeamColumn() int {
	return p.lastRowColumns[0]
}

// InBounds reports whether (col, row) lies inside the grid rectangle.
func (p *Params) InBounds(col, row int) bool {
	return col >= 0 && col < p.Columns && row >= 0 && row < p.Rows
}

// Valid reports whether a key mount exists at (col, row): in bounds and,
// for the last row, one of the populated last-row columns.
func (p *Params) Valid(col, row int) bool {
	if !p.InBounds(col, row) {
		return false
	}
	return row != p.LastRow || slices.Contains(p.lastRowColumns, col)
}

func validate(s Spec) error {
	var errs []error
	add := func(err error) { errs = append(errs, err) }

	if s.Rows < 3 {
		add(invalid("rows", "must be at least 3, got %d", s.Rows))
	}
	if s.Columns < 3 {
		add(invalid("columns", "must be at least 3, got %d", s.Columns))
	}
	if s.CenterRow < 0 || s.CenterRow >= max(s.Rows, 1) {
		add(invalid("center_row", "%d outside [0, %d)", s.CenterRow, s.Rows))
	}
	if s.CenterCol < 0 || s.CenterCol >= max(s.Columns, 1) {
		add(invalid("center_col", "%d outside [0, %d)", s.CenterCol, s.Columns))
	}

	angles := []struct {
		name  string
		v     float64
		limit float64
	}{
		{"row_curvature", s.RowCurvature, math.Pi},
		{"column_curvature", s.ColumnCurvature, math.Pi},
		{"tenting_angle", s.TentingAngle, math.Pi / 2},
		{"fixed_tenting", s.FixedTenting, math.Pi / 2},
	}
	for _, a := range angles {
		if !finite(a.v) {
			add(invalid(a.name, "not a finite number"))
			continue
		}
		// |angle| ≥ π puts sin(angle/2) back at zero without meaning "flat".
		if math.Abs(a.v) >= a.limit {
			add(invalid(a.name, "|%g| must be below %g radians", a.v, a.limit))
		}
	}

	switch s.ColumnStyle {
	case Standard, Orthographic:
	case Fixed:
		if len(s.FixedColumns) < s.Columns {
			add(invalid("fixed_columns", "fixed column style needs an entry for each of %d columns, got %d",
				s.Columns, len(s.FixedColumns)))
		}
	default:
		add(invalid("column_style", "unknown style %q", s.ColumnStyle))
	}

	if len(s.ColumnOffsets) > s.Columns {
		add(invalid("column_offsets", "%d entries for %d columns", len(s.ColumnOffsets), s.Columns))
	}

	if err := validateLastRow(s); err != nil {
		add(err)
	}

	scalars := []struct {
		name string
		v    float64
	}{
		{"wall_thickness", s.WallThickness},
		{"wall_xy_offset", s.WallXYOffset},
		{"wall_z_offset", s.WallZOffset},
		{"z_offset", s.ZOffset},
		{"extra_width", s.ExtraWidth},
		{"extra_height", s.ExtraHeight},
		{"left_wall_x_offset", s.LeftWallXOffset},
		{"left_wall_z_offset", s.LeftWallZOffset},
	}
	for _, f := range scalars {
		if !finite(f.v) {
			add(invalid(f.name, "not a finite number"))
		}
	}
	for i, v := range s.ThumbOffset {
		if !finite(v) {
			add(invalid(fmt.Sprintf("thumb_offset[%d]", i), "not a finite number"))
		}
	}
	if s.WallThickness <= 0 {
		add(invalid("wall_thickness", "must be positive, got %g", s.WallThickness))
	}
	if s.WallXYOffset < 0 {
		add(invalid("wall_xy_offset", "must not be negative, got %g", s.WallXYOffset))
	}
	if s.Resolution < 3 {
		add(invalid("resolution", "must be at least 3 segments, got %d", s.Resolution))
	}

	return errors.Join(errs...)
}

// validateLastRow checks the short-row columns. The thumb seam hulls are
// laid out for a cluster under columns 0 and 1, so the short row is
// columns 2 and 3 and at least one full column must follow it for the
// front wall.
func validateLastRow(s Spec) error {
	cols := slices.Clone(s.LastRowColumns)
	slices.Sort(cols)
	if len(cols) != 2 || cols[0] != 2 || cols[1] != 3 {
		return invalid("last_row_columns", "must be [2 3], got %v", s.LastRowColumns)
	}
	if s.Columns < 5 {
		return invalid("last_row_columns", "short row %v needs a full column to its right, only %d columns",
			s.LastRowColumns, s.Columns)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
