package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

// --- Global flag values ---
var (
	configFile  string
	outputDir   string
	workers     int
	logLevel    string
	widePinky   bool
	layoutSize  int
	supersample int

	rootCmd = &cobra.Command{
		Use:   "dactyl",
		Short: "Generate curved split keyboard cases as OpenSCAD files",
		Long: `dactyl builds the case, mirrored case, bottom plates and a keycap
preview for a column-staggered split keyboard from a parameter file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
	}

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Write every variant as a .scad file plus manifest.json",
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever the parameter file changes",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}

	layoutCmd = &cobra.Command{
		Use:   "layout [image]",
		Short: "Plot the key layout from above as WebP or TGA",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLayout,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Parameter file (.json, .json5, .yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Output directory (default: things)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&widePinky, "wide-pinky", false, "Use 1.5u keys on the outer column")

	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of writer goroutines (default: NumCPU)")

	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of writer goroutines (default: NumCPU)")

	rootCmd.AddCommand(layoutCmd)
	layoutCmd.Flags().IntVar(&layoutSize, "size", 0, "Image edge length in pixels (default: 512)")
	layoutCmd.Flags().IntVar(&supersample, "supersample", 0, "Supersampling factor (default: 2)")
}

func newLogger(level string) (*slog.Logger, error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", level)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv})), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
