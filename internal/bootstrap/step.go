// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"

	"github.com/charmbracelet/log"
)

type (
	// Step is one stage of an orchestration sequence. Run either establishes
	// the step's postcondition or returns the step's failure.
	Step struct {
		// Name identifies the step in logs.
		Name string
		// Run performs the step.
		Run func(ctx context.Context) error
	}

	// Sequence drives steps in order, stopping at the first failure.
	Sequence struct {
		steps  []Step
		logger *log.Logger
	}
)

// NewSequence creates a sequence over the given steps.
func NewSequence(logger *log.Logger, steps ...Step) *Sequence {
	if logger == nil {
		logger = log.Default()
	}
	return &Sequence{steps: steps, logger: logger}
}

// Run executes the steps in order. The first error aborts the sequence and is
// returned; later steps never run.
func (s *Sequence) Run(ctx context.Context) error {
	for _, step := range s.steps {
		s.logger.Debug("step starting", "step", step.Name)
		if err := step.Run(ctx); err != nil {
			s.logger.Debug("step failed", "step", step.Name, "err", err)
			return err
		}
		s.logger.Debug("step done", "step", step.Name)
	}
	return nil
}
