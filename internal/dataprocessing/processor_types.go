package dataprocessing

import (
	"sheetcli/pkg/contracts/domain"
)

// Processor defines the interface for in-place table transformations
type Processor interface {
	Process(t *domain.Table) error
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(t *domain.Table) error

// Process calls f(t).
func (f ProcessorFunc) Process(t *domain.Table) error { return f(t) }

// Chain runs processors in order and stops at the first error.
func Chain(processors ...Processor) Processor {
	return ProcessorFunc(func(t *domain.Table) error {
		for _, p := range processors {
			if err := p.Process(t); err != nil {
				return err
			}
		}
		return nil
	})
}
