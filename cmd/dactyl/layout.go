package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"dactyl-gen/internal/assembly"
	"dactyl-gen/internal/preview"

	"github.com/spf13/cobra"
)

func runLayout(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := cfg.Params()
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.OutputDir, "layout."+cfg.LayoutFormat)
	if len(args) == 1 {
		path = args[0]
	}

	b, err := assembly.New(cmd.Context(), p, slog.Default())
	if err != nil {
		return err
	}

	opt := preview.DefaultOptions()
	opt.Size = cfg.LayoutSize
	opt.Supersample = cfg.Supersample
	if err := preview.WriteFile(path, preview.NewLayout(b), opt); err != nil {
		return err
	}
	fmt.Printf("Layout: %s (%dpx)\n", path, opt.Size)
	return nil
}
