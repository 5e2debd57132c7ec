package operations

import (
	"errors"
	"time"
)

// Status is the outcome of one input file
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// ErrSkip marks a file the job chose not to process. Wrap it to give a reason.
var ErrSkip = errors.New("skipped")

// Result describes what a job did with one file
type Result struct {
	File     string
	Status   Status
	Rows     int
	Outputs  []string
	Matched  int
	Missed   int
	Warnings int
	Duration time.Duration
	Err      error
}

// Summary aggregates the results of a run, in input order
type Summary struct {
	Tool     string
	Results  []Result
	Duration time.Duration
}

// Count returns how many results have the given status
func (s *Summary) Count(status Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Rows returns the total number of rows read
func (s *Summary) Rows() int {
	n := 0
	for _, r := range s.Results {
		n += r.Rows
	}
	return n
}

// Outputs lists every file written, in input order
func (s *Summary) Outputs() []string {
	var out []string
	for _, r := range s.Results {
		out = append(out, r.Outputs...)
	}
	return out
}

// Err returns the error of the first failed file, or nil
func (s *Summary) Err() error {
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			return r.Err
		}
	}
	return nil
}
