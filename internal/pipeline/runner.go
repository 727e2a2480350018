// Package pipeline orchestrates file discovery, per-file processing, and
// the batch summary. Processing is strictly sequential: one file is fully
// validated, mapped, and dispatched before the next is considered.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/backmassage/wavdenoise/internal/config"
	"github.com/backmassage/wavdenoise/internal/dispatch"
	"github.com/backmassage/wavdenoise/internal/display"
	"github.com/backmassage/wavdenoise/internal/logging"
	"github.com/backmassage/wavdenoise/internal/mirror"
	"github.com/backmassage/wavdenoise/internal/probe"
)

// Run is the top-level batch entry point. It discovers candidate files and
// processes each in order: validate header, map output path, dispatch.
// Per-item skips (format mismatch, backend-reported failure) are counted
// and the run continues; any returned error is fatal and the summary line
// is not emitted. cfg.InputDir and cfg.OutputDir must hold the
// canonicalized roots.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, d dispatch.Dispatcher) (RunStats, error) {
	var stats RunStats

	files, err := Discover(cfg.InputDir)
	if err != nil {
		return stats, fmt.Errorf("discover input files: %w", err)
	}

	stats.Total = len(files)
	m := mirror.New(cfg.InputDir, cfg.OutputDir)

	log.Info("Found %d WAV candidates", stats.Total)

	for i, path := range files {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}

		if err := processFile(ctx, cfg, log, m, d, path, &stats); err != nil {
			return stats, err
		}
	}

	logSummary(cfg, log, &stats)
	return stats, nil
}

// processFile handles one candidate: probe header, map output path, ensure
// parents, dispatch, account. Returns nil on success and on per-item skips;
// a non-nil error aborts the run.
func processFile(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	m *mirror.Mapper,
	d dispatch.Dispatcher,
	path string,
	stats *RunStats,
) error {
	log.Debug(cfg.Verbose, "[%d/%d] %s", stats.Current, stats.Total, path)

	// Header parse failure is fatal: the suffix filter already promised a
	// WAV file, so an unparseable one suggests corruption the user must
	// investigate. A parseable-but-wrong spec is a routine skip.
	spec, err := probe.Probe(path)
	if err != nil {
		return err
	}
	if !spec.IsTarget() {
		log.Warn("Skipping invalid WAV file: %s", path)
		log.Debug(cfg.Verbose, "  format: %s, want %s", spec, probe.Target)
		stats.Skipped++
		return nil
	}

	outputPath, err := m.Map(path)
	if err != nil {
		return err
	}

	if cfg.SkipExisting {
		if _, err := os.Stat(outputPath); err == nil {
			log.Warn("Skip (exists): %s", outputPath)
			stats.Skipped++
			return nil
		}
	}

	if cfg.DryRun {
		log.Success("[DRY] Would denoise: %s", path)
		stats.Processed++
		return nil
	}

	if err := m.EnsureParent(outputPath); err != nil {
		return err
	}

	outcome, err := d.Dispatch(ctx, dispatch.Request{Input: path, Output: outputPath})
	if err != nil {
		return fmt.Errorf("dispatch %q: %w", path, err)
	}
	if !outcome.OK {
		if outcome.Reason != "" {
			log.Warn("Denoising failed for %s (%s)", path, outcome.Reason)
		} else {
			log.Warn("Denoising failed for %s", path)
		}
		stats.Skipped++
		return nil
	}

	if fi, err := os.Stat(path); err == nil {
		stats.InputBytes += fi.Size()
	}
	stats.Processed++
	log.Debug(cfg.Verbose, "  -> %s", outputPath)
	return nil
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Success("Denoising complete: %d files processed, %d skipped.", stats.Processed, stats.Skipped)
	if stats.InputBytes > 0 {
		log.Debug(cfg.Verbose, "  total input dispatched: %s", display.FormatBytes(stats.InputBytes))
	}
}
