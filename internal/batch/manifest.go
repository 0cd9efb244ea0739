package batch

import (
	"encoding/json"
	"os"

	"dactyl-gen/internal/mathutil"
	"dactyl-gen/internal/params"
)

// ManifestEntry represents one written variant.
type ManifestEntry struct {
	Variant string `json:"variant"`
	File    string `json:"file"`
	Bytes   int64  `json:"bytes"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Summary is the parameter digest recorded next to the files.
type Summary struct {
	Rows               int     `json:"rows"`
	Columns            int     `json:"columns"`
	ColumnStyle        string  `json:"column_style"`
	RowCurvatureDeg    float64 `json:"row_curvature_deg"`
	ColumnCurvatureDeg float64 `json:"column_curvature_deg"`
	TentingAngleDeg    float64 `json:"tenting_angle_deg"`
	WidePinky          bool    `json:"wide_pinky"`
	Keys               int     `json:"keys"`
	Floor              float64 `json:"floor"`
}

// Manifest is the content of manifest.json.
type Manifest struct {
	Params   Summary         `json:"params"`
	Variants []ManifestEntry `json:"variants"`
}

// NewSummary digests p; keys is the number of grid mounts, floor the
// computed wall floor.
func NewSummary(p *params.Params, keys int, floor float64) Summary {
	return Summary{
		Rows:               p.Rows,
		Columns:            p.Columns,
		ColumnStyle:        string(p.ColumnStyle),
		RowCurvatureDeg:    mathutil.Rad2Deg(p.RowCurvature),
		ColumnCurvatureDeg: mathutil.Rad2Deg(p.ColumnCurvature),
		TentingAngleDeg:    mathutil.Rad2Deg(p.TentingAngle),
		WidePinky:          p.WidePinky,
		Keys:               keys,
		Floor:              floor,
	}
}

// WriteManifest writes manifest.json to path.
func WriteManifest(path string, summary Summary, results []Result) error {
	m := Manifest{Params: summary, Variants: make([]ManifestEntry, len(results))}
	for i, r := range results {
		m.Variants[i] = ManifestEntry{
			Variant: r.Name,
			File:    r.File,
			Bytes:   r.Bytes,
			Success: r.Success,
			Error:   r.Error,
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
