package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/timer"
	"github.com/runoshun/tally/internal/usecase/shared"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	Ref string
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct {
	Task *domain.Task // The removed task
}

// DeleteTask is the use case for removing a task.
type DeleteTask struct {
	tasks  domain.TaskRepository
	timers *timer.Registry
	logger domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(tasks domain.TaskRepository, timers *timer.Registry, logger domain.Logger) *DeleteTask {
	return &DeleteTask{
		tasks:  tasks,
		timers: timers,
		logger: logger,
	}
}

// Execute removes the task, shifting later positions down, and forgets its timer.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	var removed *domain.Task
	err := uc.tasks.Update(ctx, func(tasks []*domain.Task) ([]*domain.Task, error) {
		idx, err := shared.ResolveRef(tasks, in.Ref)
		if err != nil {
			return nil, err
		}
		removed = tasks[idx]
		return slices.Delete(tasks, idx, idx+1), nil
	})
	if err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}

	uc.timers.Forget(removed.ID)
	uc.logger.Info(removed.ID, "task", fmt.Sprintf("deleted %q", removed.Name))
	return &DeleteTaskOutput{Task: removed}, nil
}
