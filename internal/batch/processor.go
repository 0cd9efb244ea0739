// Package batch writes generated trees to disk with a worker pool.
package batch

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"dactyl-gen/internal/assembly"
	"dactyl-gen/internal/scad"
)

// Config holds the shared settings of one export run.
type Config struct {
	OutputDir string
	Writer    scad.Writer
	Workers   int
	// Progress prints a status line this often; zero disables it.
	Progress time.Duration
}

// Result holds the outcome of writing one variant.
type Result struct {
	Name    string
	File    string
	Bytes   int64
	Success bool
	Error   string
}

// Run writes every output using a worker pool. Results are in output order.
func Run(cfg Config, outputs []assembly.Output) []Result {
	total := len(outputs)
	results := make([]Result, total)
	var processed atomic.Int64

	if cfg.Writer == nil {
		cfg.Writer = scad.Emitter{}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					if p := processed.Load(); p > 0 {
						fmt.Printf("  [%d/%d] %.1fs\n", p, total, time.Since(start).Seconds())
					}
				}
			}
		}()
	}

	// Worker pool
	jobs := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = writeOutput(cfg, outputs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range outputs {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(done)

	return results
}

func writeOutput(cfg Config, out assembly.Output) Result {
	name := out.Name + ".scad"
	res := Result{Name: out.Name, File: name}
	fail := func(format string, args ...any) Result {
		res.Error = fmt.Sprintf(format, args...)
		return res
	}

	if out.Tree == nil {
		return fail("empty tree")
	}

	path := filepath.Join(cfg.OutputDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fail("%v", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fail("%v", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := cfg.Writer.Write(bw, out.Tree); err != nil {
		return fail("serialize: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fail("%v", err)
	}

	info, err := f.Stat()
	if err != nil {
		return fail("%v", err)
	}
	res.Bytes = info.Size()
	res.Success = true
	return res
}

// Failed counts the unsuccessful results.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Success {
			n++
		}
	}
	return n
}
