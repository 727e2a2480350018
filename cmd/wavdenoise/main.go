// Command wavdenoise is the CLI entrypoint for the batch WAV denoiser.
//
// It parses flags, validates configuration and paths, and either runs
// backend diagnostics (--check) or the denoising pipeline over the input
// tree.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/backmassage/wavdenoise/internal/check"
	"github.com/backmassage/wavdenoise/internal/config"
	"github.com/backmassage/wavdenoise/internal/dispatch"
	"github.com/backmassage/wavdenoise/internal/display"
	"github.com/backmassage/wavdenoise/internal/logging"
	"github.com/backmassage/wavdenoise/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "wavdenoise: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "wavdenoise: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wavdenoise: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available. All output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	// Resolve and validate paths: input must exist, output is created if
	// needed and canonicalized afterwards so resolution cannot fail on a
	// missing directory. Output must not be inside input, or the walk
	// would discover freshly denoised files.
	inputAbs, err := absPath(cfg.InputDir)
	if err != nil {
		log.Error("Input not found: %s", cfg.InputDir)
		return 1
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Error("Cannot create output directory: %s", cfg.OutputDir)
		return 1
	}
	outputAbs, err := absPath(cfg.OutputDir)
	if err != nil {
		log.Error("Cannot resolve output path: %s", cfg.OutputDir)
		return 1
	}
	if err := cfg.ValidatePaths(inputAbs, outputAbs); err != nil {
		log.Error("%v", err)
		log.Error("Choose an output path outside: %s", cfg.InputDir)
		return 1
	}
	cfg.InputDir = inputAbs
	cfg.OutputDir = outputAbs

	log.Info("=== wavdenoise v%s (%s) ===", version, commit)
	log.Info("In:   %s", cfg.InputDir)
	log.Info("Out:  %s", cfg.OutputDir)
	log.Info("Mode: %s", cfg.Mode)
	if cfg.DryRun {
		log.Warn("DRY RUN - nothing will be dispatched")
	}
	log.Info("")

	// Fail fast if the endpoints are malformed or the local denoiser is
	// missing, before touching any file.
	if err := check.CheckDeps(&cfg); err != nil {
		log.Error("%v", err)
		return 1
	}

	d, err := dispatch.FromConfig(&cfg)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	// Phase 3: Signal handling. Cancel the context on SIGINT/SIGTERM so the
	// pipeline can stop between files without leaving partial output.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current file...")
		cancel()
	}()

	// Phase 4: Run the pipeline (discover, validate, map, dispatch).
	if _, err := pipeline.Run(ctx, &cfg, log, d); err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of input vs output directory hierarchies and a well-defined prefix strip.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
