package preview

import (
	"image"
	"image/color"

	"dactyl-gen/internal/mathutil"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Options control the plot.
type Options struct {
	Size        int // output edge length in pixels
	Supersample int // render at Size*Supersample, then downsample
	Margin      float64
	Light       Light
	Palette     Palette
	InsertSize  float64 // insert marker edge in mm
}

// DefaultOptions renders a 512 px plot at 2x supersampling.
func DefaultOptions() Options {
	return Options{
		Size:        512,
		Supersample: 2,
		Margin:      0.05,
		Light:       DefaultLight(),
		Palette:     DefaultPalette(),
		InsertSize:  5,
	}
}

// view maps world xy to pixels, y up, keeping the aspect ratio.
type view struct {
	lo     mathutil.Vec3
	scale  float64
	offX   float64
	offY   float64
	height float64
}

func newView(lo, hi mathutil.Vec3, size int, margin float64) view {
	w, h := hi[0]-lo[0], hi[1]-lo[1]
	span := max(w, h, 1e-9)
	inner := float64(size) * (1 - 2*margin)
	s := inner / span
	return view{
		lo:     lo,
		scale:  s,
		offX:   (float64(size) - w*s) / 2,
		offY:   (float64(size) - h*s) / 2,
		height: float64(size),
	}
}

func (v view) at(p mathutil.Vec3) (float32, float32) {
	x := v.offX + (p[0]-v.lo[0])*v.scale
	y := v.height - (v.offY + (p[1]-v.lo[1])*v.scale)
	return float32(x), float32(y)
}

// polygon fills pts onto dst in c.
func (v view) polygon(dst draw.Image, z *vector.Rasterizer, pts []mathutil.Vec3, c color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	b := dst.Bounds()
	z.Reset(b.Dx(), b.Dy())
	x, y := v.at(pts[0])
	z.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = v.at(p)
		z.LineTo(x, y)
	}
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// Render plots l. The result is Size×Size.
func Render(l Layout, opt Options) *image.NRGBA {
	if opt.Size <= 0 {
		opt.Size = DefaultOptions().Size
	}
	if opt.Supersample <= 0 {
		opt.Supersample = 1
	}
	size := opt.Size * opt.Supersample

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(opt.Palette.Background), image.Point{}, draw.Src)

	lo, hi := l.Bounds()
	v := newView(lo, hi, size, opt.Margin)
	z := vector.NewRasterizer(size, size)

	// Footprint first, mounts on top
	v.polygon(img, z, l.Outline, opt.Palette.Footprint)
	for _, m := range l.Mounts {
		base := opt.Palette.Key
		if m.Thumb {
			base = opt.Palette.Thumb
		}
		v.polygon(img, z, m.Corners[:], scale(base, opt.Light.Shade(m.Normal)))
	}

	h := opt.InsertSize / 2
	for _, c := range l.Inserts {
		sq := []mathutil.Vec3{
			c.Add(mathutil.Vec3{-h, -h, 0}),
			c.Add(mathutil.Vec3{h, -h, 0}),
			c.Add(mathutil.Vec3{h, h, 0}),
			c.Add(mathutil.Vec3{-h, h, 0}),
		}
		v.polygon(img, z, sq, opt.Palette.Insert)
	}

	if opt.Supersample > 1 {
		img = Downsample(img, opt.Size)
	}
	return img
}
