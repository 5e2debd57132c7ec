package operations

import (
	"context"
	"log/slog"

	"sheetcli/internal/infrastructure"
)

// logRunStart logs the start of a run
func (r *Runner) logRunStart(ctx context.Context, files int) {
	r.logger.InfoContext(ctx, "run_start",
		slog.String("tool", r.tool),
		slog.Int("files", files),
		slog.Int("workers", r.workers))
}

// logProgress logs how far the run has got
func (r *Runner) logProgress(ctx context.Context, tracker *ProgressTracker) {
	current, total, pct, last := tracker.GetProgress()
	r.logger.InfoContext(ctx, "run_progress",
		slog.String("tool", r.tool),
		slog.Int("done", current),
		slog.Int("total", total),
		slog.Float64("percent", pct),
		slog.String("last_file", last),
		slog.String("eta", tracker.GetETA()))
}

// logFileResult logs the outcome of one file
func (r *Runner) logFileResult(ctx context.Context, res Result) {
	logger := infrastructure.WithFile(r.logger, res.File)
	switch res.Status {
	case StatusFailed:
		infrastructure.LogError(ctx, logger, "file_failed", res.Err)
	case StatusSkipped:
		logger.WarnContext(ctx, "file_skipped",
			slog.String("reason", res.Err.Error()))
	default:
		logger.InfoContext(ctx, "file_complete",
			slog.Int("rows", res.Rows),
			slog.Any("outputs", res.Outputs),
			slog.Int("warnings", res.Warnings),
			slog.Duration("duration", res.Duration))
	}
}

// logRunComplete logs the totals of a run
func (r *Runner) logRunComplete(ctx context.Context, s *Summary) {
	level := slog.LevelInfo
	if s.Count(StatusFailed) > 0 {
		level = slog.LevelWarn
	}
	r.logger.Log(ctx, level, "run_complete",
		slog.String("tool", r.tool),
		slog.Int("completed", s.Count(StatusCompleted)),
		slog.Int("failed", s.Count(StatusFailed)),
		slog.Int("skipped", s.Count(StatusSkipped)),
		slog.Int("rows", s.Rows()),
		slog.Duration("duration", s.Duration))
}
