// Package operations runs a tool over many input files.
//
// A Runner applies a JobFunc to each file with bounded parallelism. Every
// file gets its own span, metrics and log line; a file that fails or
// panics is recorded as failed and the remaining files keep going. Jobs may
// return an error wrapping ErrSkip to mark a file skipped.
//
// Core Components:
//
// Runner: schedules jobs on an errgroup limited to the configured worker
// count and rate limits progress logging.
//
// Result and Summary: the outcome of one file and of a whole run, in input
// order. Summary.Err reports the first failure.
//
// ProgressTracker: counts completed files and estimates the time left.
//
// Example:
//
//	runner := operations.NewRunner(operations.RunnerOptions{Tool: "splitsheet", Workers: 4})
//	summary := runner.Run(ctx, inputs, func(ctx context.Context, file string) (operations.Result, error) {
//	    ...
//	    return operations.Result{Rows: n, Outputs: written}, nil
//	})
//	if err := summary.Err(); err != nil {
//	    return err
//	}
package operations
