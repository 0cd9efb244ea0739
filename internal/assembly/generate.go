package assembly

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/params"

	"golang.org/x/sync/errgroup"
)

// Variant names in output order.
const (
	VariantRight      = "right"
	VariantLeft       = "left"
	VariantPlateRight = "right-plate"
	VariantPlateLeft  = "left-plate"
	VariantPreview    = "preview"
)

// Variants lists every variant Generate produces, in order.
var Variants = []string{VariantRight, VariantLeft, VariantPlateRight, VariantPlateLeft, VariantPreview}

// Output is one generated tree.
type Output struct {
	Name string
	Tree csg.Node
}

// Generate builds every variant for p.
func Generate(ctx context.Context, p *params.Params, log *slog.Logger) ([]Output, error) {
	b, err := New(ctx, p, log)
	if err != nil {
		return nil, err
	}
	return b.Generate(ctx)
}

// Generate builds every variant. The right-hand model, the plate and the
// preview caps are built concurrently; the mirrored variants reuse them.
func (b *Builder) Generate(ctx context.Context) ([]Output, error) {
	log := b.log
	var right, plate, caps csg.Node
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		right = b.ModelRight()
		log.Debug("variant built", "variant", VariantRight, "elapsed", time.Since(start))
		return ctx.Err()
	})
	g.Go(func() error {
		start := time.Now()
		plate = b.PlateRight()
		log.Debug("variant built", "variant", VariantPlateRight, "elapsed", time.Since(start))
		return ctx.Err()
	})
	g.Go(func() error {
		var err error
		caps, err = b.Caps(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("assembly: generate: %w", err)
	}

	return []Output{
		{VariantRight, right},
		{VariantLeft, csg.Mirror(xAxis, right)},
		{VariantPlateRight, plate},
		{VariantPlateLeft, csg.Mirror(xAxis, plate)},
		{VariantPreview, csg.Union(right, caps)},
	}, nil
}
