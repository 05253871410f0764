package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tally/internal/domain"
)

// SummarizeInput contains the parameters for a daily summary.
type SummarizeInput struct {
	Date string // Any accepted date form; empty means today
}

// SummarizeOutput contains the daily summary.
type SummarizeOutput struct {
	Summary *domain.DailySummary
}

// Summarize is the use case for the completed-tasks summary of one day.
type Summarize struct {
	tasks domain.TaskRepository
	clock domain.Clock
}

// NewSummarize creates a new Summarize use case.
func NewSummarize(tasks domain.TaskRepository, clock domain.Clock) *Summarize {
	return &Summarize{tasks: tasks, clock: clock}
}

// Execute normalizes the date and aggregates the tasks done on it.
func (uc *Summarize) Execute(ctx context.Context, in SummarizeInput) (*SummarizeOutput, error) {
	raw := in.Date
	if raw == "" {
		raw = "today"
	}
	date, err := domain.ResolveDate(raw, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	tasks, err := uc.tasks.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	return &SummarizeOutput{Summary: domain.Summarize(tasks, date)}, nil
}
