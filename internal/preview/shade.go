package preview

import (
	"image/color"
	"math"

	"dactyl-gen/internal/mathutil"
)

// Light is a simple ambient plus directional model for plate shading.
type Light struct {
	Dir     mathutil.Vec3
	Ambient float64
	Direct  float64
}

// DefaultLight lights from the upper left, above the board.
func DefaultLight() Light {
	return Light{
		Dir:     mathutil.Vec3{-1, 1, 3}.Normalize(),
		Ambient: 0.35,
		Direct:  0.75,
	}
}

// Shade is the brightness factor for a plate with the given normal.
// Double sided, so tilts past vertical still read.
func (lt Light) Shade(normal mathutil.Vec3) float64 {
	return lt.Ambient + math.Abs(normal.Normalize().Dot(lt.Dir))*lt.Direct
}

// Palette colours the plot.
type Palette struct {
	Background color.NRGBA
	Footprint  color.NRGBA
	Key        color.NRGBA
	Thumb      color.NRGBA
	Insert     color.NRGBA
}

func DefaultPalette() Palette {
	return Palette{
		Background: color.NRGBA{0, 0, 0, 0},
		Footprint:  color.NRGBA{210, 210, 205, 255},
		Key:        color.NRGBA{70, 120, 190, 255},
		Thumb:      color.NRGBA{200, 110, 60, 255},
		Insert:     color.NRGBA{40, 40, 40, 255},
	}
}

func scale(c color.NRGBA, s float64) color.NRGBA {
	return color.NRGBA{clamp8(float64(c.R) * s), clamp8(float64(c.G) * s), clamp8(float64(c.B) * s), c.A}
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
