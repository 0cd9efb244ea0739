// Package config loads keyboard parameter files and turns them into a
// validated params.Params.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"

	"dactyl-gen/internal/mathutil"
	"dactyl-gen/internal/params"

	"github.com/go-playground/validator/v10"
	"github.com/titanous/json5"
	"gopkg.in/yaml.v3"
)

// FixedColumn is one entry of the fixed column-style table, angle in degrees.
type FixedColumn struct {
	AngleDeg float64 `json:"angle_deg" yaml:"angle_deg"`
	X        float64 `json:"x" yaml:"x"`
	Z        float64 `json:"z" yaml:"z"`
}

// File holds every setting a parameter file may carry. Angles are in
// radians; each has a *_deg twin that wins when set.
type File struct {
	// Layout
	Rows           int           `json:"rows" yaml:"rows" validate:"gte=3"`
	Columns        int           `json:"columns" yaml:"columns" validate:"gte=3"`
	CenterRow      int           `json:"center_row" yaml:"center_row" validate:"gte=0,ltfield=Rows"`
	CenterCol      int           `json:"center_col" yaml:"center_col" validate:"gte=0,ltfield=Columns"`
	ColumnStyle    string        `json:"column_style" yaml:"column_style" validate:"oneof=standard orthographic fixed"`
	ColumnOffsets  [][3]float64  `json:"column_offsets" yaml:"column_offsets"`
	FixedColumns   []FixedColumn `json:"fixed_columns" yaml:"fixed_columns" validate:"dive"`
	LastRowColumns []int         `json:"last_row_columns" yaml:"last_row_columns" validate:"len=2,dive,gte=0"`
	WidePinky      bool          `json:"wide_pinky" yaml:"wide_pinky"`
	SideNubs       bool          `json:"side_nubs" yaml:"side_nubs"`
	ThumbOffset    [3]float64    `json:"thumb_offset" yaml:"thumb_offset"`
	ExtraWidth     float64       `json:"extra_width" yaml:"extra_width" validate:"gte=0"`
	ExtraHeight    float64       `json:"extra_height" yaml:"extra_height" validate:"gte=0"`
	ZOffset        float64       `json:"z_offset" yaml:"z_offset"`
	Resolution     int           `json:"resolution" yaml:"resolution" validate:"gte=3"`

	// Angles
	RowCurvature       float64  `json:"row_curvature" yaml:"row_curvature"`
	RowCurvatureDeg    *float64 `json:"row_curvature_deg,omitempty" yaml:"row_curvature_deg,omitempty"`
	ColumnCurvature    float64  `json:"column_curvature" yaml:"column_curvature"`
	ColumnCurvatureDeg *float64 `json:"column_curvature_deg,omitempty" yaml:"column_curvature_deg,omitempty"`
	TentingAngle       float64  `json:"tenting_angle" yaml:"tenting_angle"`
	TentingAngleDeg    *float64 `json:"tenting_angle_deg,omitempty" yaml:"tenting_angle_deg,omitempty"`
	FixedTenting       float64  `json:"fixed_tenting" yaml:"fixed_tenting"`
	FixedTentingDeg    *float64 `json:"fixed_tenting_deg,omitempty" yaml:"fixed_tenting_deg,omitempty"`

	// Walls
	WallThickness   float64 `json:"wall_thickness" yaml:"wall_thickness" validate:"gt=0"`
	WallXYOffset    float64 `json:"wall_xy_offset" yaml:"wall_xy_offset" validate:"gte=0"`
	WallZOffset     float64 `json:"wall_z_offset" yaml:"wall_z_offset"`
	LeftWallXOffset float64 `json:"left_wall_x_offset" yaml:"left_wall_x_offset" validate:"gte=0"`
	LeftWallZOffset float64 `json:"left_wall_z_offset" yaml:"left_wall_z_offset"`

	// Output
	OutputDir    string `json:"output_dir" yaml:"output_dir"`
	Workers      int    `json:"workers" yaml:"workers" validate:"gte=0"`
	LayoutSize   int    `json:"layout_size" yaml:"layout_size" validate:"gte=0,lte=8192"`
	Supersample  int    `json:"supersample" yaml:"supersample" validate:"gte=0,lte=8"`
	LayoutFormat string `json:"layout_format" yaml:"layout_format" validate:"omitempty,oneof=webp tga"`
}

// Default is the classic 5×6 layout with default output settings unset.
func Default() File {
	s := params.DefaultSpec()
	f := File{
		Rows:            s.Rows,
		Columns:         s.Columns,
		CenterRow:       s.CenterRow,
		CenterCol:       s.CenterCol,
		ColumnStyle:     string(s.ColumnStyle),
		LastRowColumns:  s.LastRowColumns,
		WidePinky:       s.WidePinky,
		SideNubs:        s.SideNubs,
		ThumbOffset:     s.ThumbOffset,
		ExtraWidth:      s.ExtraWidth,
		ExtraHeight:     s.ExtraHeight,
		ZOffset:         s.ZOffset,
		Resolution:      s.Resolution,
		RowCurvature:    s.RowCurvature,
		ColumnCurvature: s.ColumnCurvature,
		TentingAngle:    s.TentingAngle,
		FixedTenting:    s.FixedTenting,
		WallThickness:   s.WallThickness,
		WallXYOffset:    s.WallXYOffset,
		WallZOffset:     s.WallZOffset,
		LeftWallXOffset: s.LeftWallXOffset,
		LeftWallZOffset: s.LeftWallZOffset,
	}
	for _, off := range s.ColumnOffsets {
		f.ColumnOffsets = append(f.ColumnOffsets, off)
	}
	for _, fc := range s.FixedColumns {
		f.FixedColumns = append(f.FixedColumns, FixedColumn{AngleDeg: mathutil.Rad2Deg(fc.Angle), X: fc.X, Z: fc.Z})
	}
	return f
}

// Load reads a parameter file. The format follows the extension: .json,
// .json5, .yaml or .yml. Settings missing from the file keep their
// Default values.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	f := Default()
	if err := Parse(filepath.Ext(path), data, &f); err != nil {
		return File{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes data in the format named by ext onto f.
func Parse(ext string, data []byte, f *File) error {
	switch strings.ToLower(ext) {
	case ".json":
		return json.Unmarshal(data, f)
	case ".json5":
		return json5.Unmarshal(data, f)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, f)
	}
	return fmt.Errorf("unsupported format %q", ext)
}

// Flags holds CLI flag values that override file settings.
type Flags struct {
	OutputDir   string
	Workers     int
	LayoutSize  int
	Supersample int
	WidePinky   bool
}

// Resolve applies flag overrides and fills unset output settings.
func (f *File) Resolve(flags Flags) {
	// CLI flags override the file
	if flags.OutputDir != "" {
		f.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		f.Workers = flags.Workers
	}
	if flags.LayoutSize > 0 {
		f.LayoutSize = flags.LayoutSize
	}
	if flags.Supersample > 0 {
		f.Supersample = flags.Supersample
	}
	if flags.WidePinky {
		f.WidePinky = true
	}

	// Defaults for output settings
	if f.OutputDir == "" {
		f.OutputDir = "things"
	}
	if f.Workers <= 0 {
		f.Workers = runtime.NumCPU()
	}
	if f.LayoutSize <= 0 {
		f.LayoutSize = 512
	}
	if f.Supersample <= 0 {
		f.Supersample = 2
	}
	if f.LayoutFormat == "" {
		f.LayoutFormat = "webp"
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their file key
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the file-level rules. Every violation is reported as a
// params.ConfigError.
func (f File) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, &params.ConfigError{Field: fieldPath(fe), Reason: reason(fe)})
	}
	return errors.Join(errs...)
}

// fieldPath drops the struct name prefix from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("must be at least %s, got %v", fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("must be greater than %s, got %v", fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("must be at most %s, got %v", fe.Param(), fe.Value())
	case "ltfield":
		return fmt.Sprintf("must be less than %s, got %v", fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())
	case "len":
		return fmt.Sprintf("must have %s entries", fe.Param())
	}
	return fmt.Sprintf("failed %s check", fe.Tag())
}

// Spec converts the file to a params.Spec, applying the *_deg overrides.
func (f File) Spec() params.Spec {
	angle := func(rad float64, deg *float64) float64 {
		if deg != nil {
			return mathutil.Deg2Rad(*deg)
		}
		return rad
	}

	s := params.Spec{
		Rows:            f.Rows,
		Columns:         f.Columns,
		RowCurvature:    angle(f.RowCurvature, f.RowCurvatureDeg),
		ColumnCurvature: angle(f.ColumnCurvature, f.ColumnCurvatureDeg),
		CenterRow:       f.CenterRow,
		CenterCol:       f.CenterCol,
		TentingAngle:    angle(f.TentingAngle, f.TentingAngleDeg),
		ColumnStyle:     params.ColumnStyle(f.ColumnStyle),
		FixedTenting:    angle(f.FixedTenting, f.FixedTentingDeg),
		LastRowColumns:  append([]int(nil), f.LastRowColumns...),
		WidePinky:       f.WidePinky,
		ThumbOffset:     f.ThumbOffset,
		WallThickness:   f.WallThickness,
		WallXYOffset:    f.WallXYOffset,
		WallZOffset:     f.WallZOffset,
		ZOffset:         f.ZOffset,
		ExtraWidth:      f.ExtraWidth,
		ExtraHeight:     f.ExtraHeight,
		LeftWallXOffset: f.LeftWallXOffset,
		LeftWallZOffset: f.LeftWallZOffset,
		SideNubs:        f.SideNubs,
		Resolution:      f.Resolution,
	}
	for _, off := range f.ColumnOffsets {
		s.ColumnOffsets = append(s.ColumnOffsets, off)
	}
	for _, fc := range f.FixedColumns {
		s.FixedColumns = append(s.FixedColumns, params.FixedColumn{Angle: mathutil.Deg2Rad(fc.AngleDeg), X: fc.X, Z: fc.Z})
	}
	return s
}

// Params validates the file and builds the parameter set. Geometry rules
// the tags cannot express are checked by params.New.
func (f File) Params() (*params.Params, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return params.New(f.Spec())
}
