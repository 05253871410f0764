package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/usecase/shared"
)

// UpdateTaskInput contains the parameters for editing a task.
// Nil fields keep their current value.
type UpdateTaskInput struct {
	Name     *string
	Date     *string
	Category *string
	Ref      string // Task reference (id, id prefix or position)
}

// UpdateTaskOutput contains the result of editing a task.
type UpdateTaskOutput struct {
	Task *domain.Task
}

// UpdateTask is the use case for replacing the editable fields of a task.
type UpdateTask struct {
	tasks  domain.TaskRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewUpdateTask creates a new UpdateTask use case.
func NewUpdateTask(tasks domain.TaskRepository, clock domain.Clock, logger domain.Logger) *UpdateTask {
	return &UpdateTask{
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// Execute replaces name, date and category. Done state and time spent are kept.
func (uc *UpdateTask) Execute(ctx context.Context, in UpdateTaskInput) (*UpdateTaskOutput, error) {
	task, err := shared.MutateTask(ctx, uc.tasks, in.Ref, func(t *domain.Task) error {
		name, date, category := t.Name, t.Date, t.Category
		if in.Name != nil {
			name = *in.Name
		}
		if in.Date != nil {
			date = *in.Date
		}
		if in.Category != nil {
			category = *in.Category
		}

		fields, err := resolveFields(name, date, category, uc.clock)
		if err != nil {
			return err
		}
		return t.Apply(fields)
	})
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	uc.logger.Info(task.ID, "task", "updated")
	return &UpdateTaskOutput{Task: task}, nil
}
