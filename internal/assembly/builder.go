// Package assembly combines the mounts, webbing, walls and peripherals
// into the finished CSG trees.
package assembly

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"dactyl-gen/internal/connect"
	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/params"
	"dactyl-gen/internal/peripheral"
	"dactyl-gen/internal/placement"
	"dactyl-gen/internal/shapes"
	"dactyl-gen/internal/walls"

	"golang.org/x/sync/errgroup"
)

// Builder holds the generators of one layout and the parts shared by
// several variants. It is read-only after New.
type Builder struct {
	p      *params.Params
	pl     *placement.Placer
	lib    shapes.Library
	conn   *connect.Generator
	walls  *walls.Generator
	periph *peripheral.Placer
	log    *slog.Logger

	keyHoles csg.Node
	thumbs   csg.Node
	floor    float64
}

// New places every mount and derives the wall floor from them.
func New(ctx context.Context, p *params.Params, log *slog.Logger) (*Builder, error) {
	if log == nil {
		log = slog.Default()
	}
	pl := placement.New(p)
	lib := shapes.New(p)
	b := &Builder{
		p:    p,
		pl:   pl,
		lib:  lib,
		conn: connect.New(pl, lib, log),
		log:  log,
	}

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := b.placeKeys(ctx, b.keyPlate)
		b.keyHoles = n
		return err
	})
	g.Go(func() error {
		b.thumbs = b.placeThumbs(b.thumbPlate)
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("assembly: place mounts: %w", err)
	}

	b.floor = Floor(p, csg.Union(b.keyHoles, b.thumbs))
	b.walls = walls.New(pl, lib, b.floor, log)
	b.periph = peripheral.New(pl, lib, b.walls)
	log.Debug("mounts placed", "keys", len(pl.Keys()), "floor", b.floor, "elapsed", time.Since(start))
	return b, nil
}

// Floor is the z the wall bottom hulls reach down to: the lowest mount
// point lowered by the wall drop, never above z=0, and one slab deeper.
func Floor(p *params.Params, mounts csg.Node) float64 {
	low := 0.0
	if bb := csg.Bounds(mounts); !bb.Empty() {
		low = bb.Min[2]
	}
	return math.Min(0, low+math.Min(0, p.WallZOffset)) - params.BottomSlab
}

// Floor returns the computed wall floor.
func (b *Builder) Floor() float64 { return b.floor }

func (b *Builder) Params() *params.Params { return b.p }
func (b *Builder) Placer() *placement.Placer { return b.pl }
func (b *Builder) Walls() *walls.Generator { return b.walls }
func (b *Builder) Peripherals() *peripheral.Placer { return b.periph }

// keyPlate is the plate for a grid mount; the last column takes the 1.5u
// plate when the pinky column is wide.
func (b *Builder) keyPlate(col, _ int) csg.Node {
	if b.p.WidePinky && col == b.p.LastCol {
		return b.lib.WidePlate()
	}
	return b.lib.SinglePlate()
}

// keyCap is the cosmetic cap for a grid mount.
func (b *Builder) keyCap(col, _ int) csg.Node {
	if b.p.WidePinky && col == b.p.LastCol {
		return csg.RotateZ(math.Pi/2, b.lib.Keycap(1.5))
	}
	return b.lib.Keycap(1)
}

func (b *Builder) thumbPlate(t placement.Thumb) csg.Node {
	if t.Wide() {
		return b.lib.ThumbPlate()
	}
	return b.lib.SinglePlate()
}

func (b *Builder) thumbCap(t placement.Thumb) csg.Node {
	if t.Wide() {
		return b.lib.Keycap(1.5)
	}
	return b.lib.Keycap(1)
}

// placeKeys places one shape per valid grid point. Cells are independent
// and computed in parallel; each result lands in its own slot so the
// union order only depends on the key order.
func (b *Builder) placeKeys(ctx context.Context, shape func(col, row int) csg.Node) (csg.Node, error) {
	keys := b.pl.Keys()
	parts := make([]csg.Node, len(keys))

	g, ctx := errgroup.WithContext(ctx)
	for i, k := range keys {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parts[i] = b.pl.KeyPlace(k.Col, k.Row, shape(k.Col, k.Row))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return csg.Union(parts...), nil
}

func (b *Builder) placeThumbs(shape func(placement.Thumb) csg.Node) csg.Node {
	parts := make([]csg.Node, len(placement.Thumbs))
	for i, t := range placement.Thumbs {
		parts[i] = b.pl.ThumbPlace(t, shape(t))
	}
	return csg.Union(parts...)
}
