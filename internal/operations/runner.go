package operations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"sheetcli/internal/config"
	"sheetcli/internal/infrastructure"
)

// DefaultProgressInterval is the minimum gap between progress log lines
const DefaultProgressInterval = 2 * time.Second

// JobFunc processes one input file. Returning an error wrapping ErrSkip
// marks the file skipped rather than failed.
type JobFunc func(ctx context.Context, file string) (Result, error)

// RunnerOptions configures a Runner. Zero values pick sensible defaults.
type RunnerOptions struct {
	Tool             string
	Workers          int
	Logger           *slog.Logger
	Tracer           trace.Tracer
	Metrics          *infrastructure.ToolMetrics
	ProgressInterval time.Duration
}

// Runner applies a job to many files with bounded parallelism. A failing
// file never stops the others.
type Runner struct {
	tool     string
	workers  int
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *infrastructure.ToolMetrics
	interval time.Duration
}

// NewRunner creates a runner
func NewRunner(opts RunnerOptions) *Runner {
	r := &Runner{
		tool:     opts.Tool,
		workers:  opts.Workers,
		logger:   opts.Logger,
		tracer:   opts.Tracer,
		metrics:  opts.Metrics,
		interval: opts.ProgressInterval,
	}
	if r.workers <= 0 {
		r.workers = config.DefaultWorkers
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.tracer == nil {
		r.tracer = tracenoop.NewTracerProvider().Tracer(infrastructure.MeterName)
	}
	if r.interval <= 0 {
		r.interval = DefaultProgressInterval
	}
	return r
}

// Run processes files and returns one result per file, in input order.
// Cancelling ctx fails the files that have not started yet.
func (r *Runner) Run(ctx context.Context, files []string, job JobFunc) *Summary {
	start := time.Now()
	results := make([]Result, len(files))
	tracker := NewProgressTracker(r.tool, len(files))
	progress := &rate.Sometimes{First: 1, Interval: r.interval}

	r.logRunStart(ctx, len(files))

	var g errgroup.Group
	g.SetLimit(r.workers)
	for i, file := range files {
		g.Go(func() error {
			results[i] = r.runOne(ctx, file, job)
			tracker.Increment(file)
			progress.Do(func() { r.logProgress(ctx, tracker) })
			return nil
		})
	}
	g.Wait()

	summary := &Summary{Tool: r.tool, Results: results, Duration: time.Since(start)}
	r.logRunComplete(ctx, summary)
	return summary
}

func (r *Runner) runOne(ctx context.Context, file string, job JobFunc) (res Result) {
	start := time.Now()
	ctx, span := r.tracer.Start(ctx, "sheetcli.file",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("tool", r.tool),
			attribute.String("file", file),
		))
	defer span.End()

	defer func() {
		res.File = file
		res.Duration = time.Since(start)
		r.record(ctx, res)
	}()

	if err := ctx.Err(); err != nil {
		return Result{Status: StatusFailed, Err: err}
	}

	res, err := r.safeCall(ctx, file, job)
	switch {
	case errors.Is(err, ErrSkip):
		res.Status, res.Err = StatusSkipped, err
	case err != nil:
		res.Status, res.Err = StatusFailed, err
	default:
		res.Status = StatusCompleted
	}
	return res
}

// safeCall turns a panicking job into a failed file.
func (r *Runner) safeCall(ctx context.Context, file string, job JobFunc) (res Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("job panicked on %s: %v", file, p)
		}
	}()
	return job(ctx, file)
}

func (r *Runner) record(ctx context.Context, res Result) {
	infrastructure.SetSpanAttributes(ctx,
		attribute.String("status", string(res.Status)),
		attribute.Int("rows", res.Rows),
		attribute.Int("warnings", res.Warnings),
	)
	if res.Status == StatusFailed {
		infrastructure.RecordError(ctx, res.Err)
	}

	r.metrics.RecordFile(ctx, r.tool, string(res.Status), res.Rows, res.Duration)
	if res.Matched > 0 || res.Missed > 0 {
		r.metrics.RecordLookup(ctx, r.tool, res.Matched, res.Missed)
	}
	r.metrics.RecordWarnings(ctx, r.tool, res.Warnings)

	r.logFileResult(ctx, res)
}
