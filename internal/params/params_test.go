package params_test

import (
	"errors"
	"math"
	"testing"

	"dactyl-gen/internal/mathutil"
	"dactyl-gen/internal/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDerivedValues(t *testing.T) {
	p := params.Default()

	require.Equal(t, 4, p.LastRow)
	require.Equal(t, 3, p.CornerRow)
	require.Equal(t, 5, p.LastCol)
	require.InDelta(t, 17.4, p.MountWidth, 1e-9)
	require.InDelta(t, 16.7, p.CapTopHeight, 1e-9)

	wantRow := (p.MountHeight+p.ExtraHeight)/2/math.Sin(math.Pi/24) + p.CapTopHeight
	wantCol := (p.MountWidth+p.ExtraWidth)/2/math.Sin(math.Pi/72) + p.CapTopHeight
	assert.InDelta(t, wantRow, p.RowRadius, 1e-9)
	assert.InDelta(t, wantCol, p.ColumnRadius, 1e-9)
	assert.InDelta(t, -1-wantCol*math.Sin(math.Pi/36), p.ColumnXDelta, 1e-9)
	assert.False(t, p.RowFlat)
	assert.False(t, p.ColumnFlat)
}

func TestShortRowRule(t *testing.T) {
	p := params.Default()

	assert.True(t, p.Valid(0, 0))
	assert.True(t, p.Valid(5, 3))
	assert.True(t, p.Valid(2, 4))
	assert.True(t, p.Valid(3, 4))
	assert.False(t, p.Valid(1, 4))
	assert.False(t, p.Valid(4, 4))
	assert.False(t, p.Valid(6, 0))
	assert.False(t, p.Valid(0, -1))
	assert.True(t, p.InBounds(1, 4))
	assert.Equal(t, 2, p.SeamColumn())
}

func TestFlatCurvatureIsGuarded(t *testing.T) {
	s := params.DefaultSpec()
	s.RowCurvature = 0
	s.ColumnCurvature = 0
	p, err := params.New(s)
	require.NoError(t, err)

	assert.True(t, p.RowFlat)
	assert.True(t, p.ColumnFlat)
	assert.True(t, math.IsInf(p.RowRadius, 1))
	assert.InDelta(t, -1-(p.MountWidth+p.ExtraWidth), p.ColumnXDelta, 1e-9)
}

func TestNewRejects(t *testing.T) {
	tests := []struct {
		name  string
		field string
		edit  func(*params.Spec)
	}{
		{"too few rows", "rows", func(s *params.Spec) { s.Rows = 2 }},
		{"too few columns", "columns", func(s *params.Spec) { s.Columns = 2; s.ColumnOffsets = nil }},
		{"center row out of range", "center_row", func(s *params.Spec) { s.CenterRow = 5 }},
		{"center col negative", "center_col", func(s *params.Spec) { s.CenterCol = -1 }},
		{"full turn curvature", "row_curvature", func(s *params.Spec) { s.RowCurvature = 2 * math.Pi }},
		{"nan curvature", "column_curvature", func(s *params.Spec) { s.ColumnCurvature = math.NaN() }},
		{"unknown style", "column_style", func(s *params.Spec) { s.ColumnStyle = "spiral" }},
		{"missing fixed entry", "fixed_columns", func(s *params.Spec) {
			s.ColumnStyle = params.Fixed
			s.FixedColumns = s.FixedColumns[:4]
		}},
		{"too many offsets", "column_offsets", func(s *params.Spec) {
			s.ColumnOffsets = append(s.ColumnOffsets, mathutil.Vec3{})
		}},
		{"split last row", "last_row_columns", func(s *params.Spec) { s.LastRowColumns = []int{2, 4} }},
		{"last row shifted", "last_row_columns", func(s *params.Spec) { s.LastRowColumns = []int{3, 4} }},
		{"no column after short row", "last_row_columns", func(s *params.Spec) {
			s.Columns = 4
			s.ColumnOffsets = nil
			s.CenterCol = 2
		}},
		{"zero wall", "wall_thickness", func(s *params.Spec) { s.WallThickness = 0 }},
		{"coarse resolution", "resolution", func(s *params.Spec) { s.Resolution = 2 }},
		{"inf thumb", "thumb_offset[1]", func(s *params.Spec) { s.ThumbOffset[1] = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := params.DefaultSpec()
			tt.edit(&s)

			p, err := params.New(s)
			require.Nil(t, p)
			require.ErrorIs(t, err, params.ErrInvalidConfig)

			var ce *params.ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestNewAcceptsNarrowestGrid(t *testing.T) {
	s := params.DefaultSpec()
	s.Columns = 5
	s.ColumnOffsets = s.ColumnOffsets[:5]
	s.CenterCol = 2

	p, err := params.New(s)
	require.NoError(t, err)
	assert.Equal(t, 4, p.LastCol)
	assert.True(t, p.Valid(3, p.LastRow))
	assert.True(t, p.Valid(4, p.CornerRow))
	assert.False(t, p.Valid(4, p.LastRow))
}

func TestNewCopiesSlices(t *testing.T) {
	s := params.DefaultSpec()
	p, err := params.New(s)
	require.NoError(t, err)

	s.ColumnOffsets[2] = mathutil.Vec3{99, 99, 99}
	s.LastRowColumns[0] = 0
	assert.Equal(t, mathutil.Vec3{0, 2.82, -4.5}, p.ColumnOffset(2))
	assert.Equal(t, []int{2, 3}, p.LastRowColumns())

	cols := p.LastRowColumns()
	cols[0] = 7
	assert.Equal(t, []int{2, 3}, p.LastRowColumns())
}

func TestSpecRoundTrip(t *testing.T) {
	p := params.Default()
	q, err := params.New(p.Spec())
	require.NoError(t, err)
	assert.Equal(t, p, q)
}

func TestColumnOffsetDefaultsToZero(t *testing.T) {
	s := params.DefaultSpec()
	s.ColumnOffsets = s.ColumnOffsets[:2]
	p, err := params.New(s)
	require.NoError(t, err)
	assert.Equal(t, mathutil.Vec3{}, p.ColumnOffset(4))
}
