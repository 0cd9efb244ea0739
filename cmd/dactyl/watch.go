package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// debounce collapses the burst of events an editor save produces.
const debounce = 300 * time.Millisecond

func runWatch(cmd *cobra.Command, _ []string) error {
	if configFile == "" {
		return errors.New("watch needs --config")
	}
	ctx := cmd.Context()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file on save.
	target := filepath.Clean(configFile)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	rebuild := func() {
		cfg, err := loadConfig()
		if err == nil {
			err = generate(ctx, cfg)
		}
		if err != nil {
			slog.Error("regeneration failed", "config", target, "err", err)
		}
	}

	rebuild()
	fmt.Printf("Watching %s (Ctrl-C to stop)\n", target)

	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			slog.Debug("parameter file changed", "op", ev.Op.String())
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "err", err)
		case <-timer.C:
			rebuild()
		}
	}
}
