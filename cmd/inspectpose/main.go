package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"dactyl-gen/internal/assembly"
	"dactyl-gen/internal/config"
	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/mathutil"
	"dactyl-gen/internal/params"
	"dactyl-gen/internal/placement"
)

func main() {
	configFile := flag.String("config", "", "Parameter file (default: built-in layout)")
	col := flag.Int("col", -1, "Show only this column")
	row := flag.Int("row", -1, "Show only this row")
	steps := flag.Bool("steps", false, "Print the transform steps of each key")
	showParams := flag.Bool("params", false, "Print the resolved parameter set")
	trees := flag.Bool("trees", false, "Build every variant and print tree statistics")
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	p, err := cfg.Params()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	pl := placement.New(p)

	fmt.Printf("Grid %d×%d, style %s, row radius %.3f, column radius %.3f\n",
		p.Rows, p.Columns, p.ColumnStyle, p.RowRadius, p.ColumnRadius)
	if *showParams {
		fmt.Printf("%+v\n", p.Spec())
	}

	up := mathutil.Vec3{0, 0, 1}
	worst := 0.0
	skewed := 0
	for _, k := range pl.Keys() {
		if (*col >= 0 && k.Col != *col) || (*row >= 0 && k.Row != *row) {
			continue
		}
		pose := pl.KeyPose(k.Col, k.Row)
		m, _ := csg.ChainMatrix(pl.KeyPlace(k.Col, k.Row, csg.Box(1, 1, 1)))
		drift := m.Translation().Sub(pose.T).Len()
		worst = max(worst, drift)

		// R^T·R must be the identity for a rigid placement
		rigid := mathutil.FromMat3Translation(mathutil.Mat3Mul(pose.R.Transpose(), pose.R), mathutil.Vec3{}).IsIdentity()
		if !rigid {
			skewed++
		}

		n := pose.R.MulVec3(up)
		fmt.Printf("  key (%d,%d): pos [%8.3f %8.3f %8.3f]  normal [%6.3f %6.3f %6.3f]  drift %.2e  rigid %v\n",
			k.Col, k.Row, pose.T[0], pose.T[1], pose.T[2], n[0], n[1], n[2], drift, rigid)
		if *steps {
			for _, s := range pl.Steps(k.Col, k.Row) {
				fmt.Printf("      %v\n", s)
			}
		}
	}

	if *col < 0 && *row < 0 {
		o := pl.ThumbOrigin()
		fmt.Printf("Thumb origin [%8.3f %8.3f %8.3f]\n", o[0], o[1], o[2])
		for _, t := range placement.Thumbs {
			pose := pl.ThumbPose(t)
			n := pose.R.MulVec3(up)
			fmt.Printf("  thumb %-2s: pos [%8.3f %8.3f %8.3f]  normal [%6.3f %6.3f %6.3f]\n",
				t, pose.T[0], pose.T[1], pose.T[2], n[0], n[1], n[2])
		}
	}

	fmt.Printf("Max shape/point drift: %.2e, non-rigid poses: %d\n", worst, skewed)

	if *trees {
		if err := printTrees(p); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// printTrees builds every variant and prints node counts, primitive
// count and extent.
func printTrees(p *params.Params) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	outs, err := assembly.Generate(context.Background(), p, log)
	if err != nil {
		return err
	}
	kinds := []csg.Kind{csg.KindPrimitive, csg.KindTransform, csg.KindBoolean, csg.KindProjection}
	for _, o := range outs {
		counts := csg.Count(o.Tree)
		b := csg.Bounds(o.Tree)
		fmt.Printf("%-11s", o.Name)
		for _, k := range kinds {
			fmt.Printf(" %s %6d", k, counts[k])
		}
		fmt.Printf("  placed %6d  extent [%7.1f %7.1f %7.1f] .. [%7.1f %7.1f %7.1f]\n",
			len(csg.Points(o.Tree)), b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
	}
	return nil
}
