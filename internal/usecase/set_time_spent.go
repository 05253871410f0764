package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/usecase/shared"
)

// Ensure SetTimeSpent can receive timer flushes.
var _ domain.TimeSink = (*SetTimeSpent)(nil)

// SetTimeSpent is the use case for overwriting a task's tracked seconds.
// Running timers flush through it.
type SetTimeSpent struct {
	tasks domain.TaskRepository
}

// NewSetTimeSpent creates a new SetTimeSpent use case.
func NewSetTimeSpent(tasks domain.TaskRepository) *SetTimeSpent {
	return &SetTimeSpent{tasks: tasks}
}

// SetTimeSpent sets the task's time spent to exactly seconds.
func (uc *SetTimeSpent) SetTimeSpent(ctx context.Context, id domain.TaskID, seconds int) error {
	if seconds < 0 {
		return domain.ErrNegativeTime
	}

	err := uc.tasks.Update(ctx, func(tasks []*domain.Task) ([]*domain.Task, error) {
		idx, err := shared.FindByID(tasks, id)
		if err != nil {
			return nil, err
		}
		tasks[idx].TimeSpent = seconds
		return tasks, nil
	})
	if err != nil {
		return fmt.Errorf("set time spent: %w", err)
	}
	return nil
}
