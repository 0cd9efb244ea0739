package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"dactyl-gen/internal/assembly"
	"dactyl-gen/internal/batch"
	"dactyl-gen/internal/config"
	"dactyl-gen/internal/scad"

	"github.com/spf13/cobra"
)

// loadConfig reads the parameter file, or the defaults when none is
// given, and applies the command line overrides.
func loadConfig() (config.File, error) {
	cfg := config.Default()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return config.File{}, err
		}
	}
	cfg.Resolve(config.Flags{
		OutputDir:   outputDir,
		Workers:     workers,
		LayoutSize:  layoutSize,
		Supersample: supersample,
		WidePinky:   widePinky,
	})
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return generate(cmd.Context(), cfg)
}

// generate builds every variant for cfg and writes them out.
func generate(ctx context.Context, cfg config.File) error {
	p, err := cfg.Params()
	if err != nil {
		return err
	}

	fmt.Printf("Layout: %d×%d %s, wide pinky %v\n", p.Rows, p.Columns, p.ColumnStyle, p.WidePinky)
	fmt.Printf("Output: %s, Workers: %d\n", cfg.OutputDir, cfg.Workers)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	b, err := assembly.New(ctx, p, slog.Default())
	if err != nil {
		return err
	}
	outputs, err := b.Generate(ctx)
	if err != nil {
		return err
	}
	built := time.Since(start)

	results := batch.Run(batch.Config{
		OutputDir: cfg.OutputDir,
		Writer:    scad.Emitter{},
		Workers:   cfg.Workers,
		Progress:  2 * time.Second,
	}, outputs)

	summary := batch.NewSummary(p, len(b.Placer().Keys()), b.Floor())
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, summary, results); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	for _, r := range results {
		if r.Success {
			fmt.Printf("  %-12s %s (%d bytes)\n", r.Name, r.File, r.Bytes)
		} else {
			fmt.Printf("  %-12s FAILED: %s\n", r.Name, r.Error)
		}
	}
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Built in %s, written in %s\n", built.Round(time.Millisecond), (time.Since(start) - built).Round(time.Millisecond))

	if n := batch.Failed(results); n > 0 {
		return fmt.Errorf("%d of %d variants failed", n, len(results))
	}
	return nil
}
