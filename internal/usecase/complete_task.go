package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/usecase/shared"
)

// CompleteTaskInput contains the parameters for completing a task.
type CompleteTaskInput struct {
	Ref string
}

// CompleteTaskOutput contains the result of completing a task.
type CompleteTaskOutput struct {
	Task    *domain.Task
	Changed bool // False if the task was already done
}

// CompleteTask is the use case for marking a task as done.
type CompleteTask struct {
	tasks  domain.TaskRepository
	logger domain.Logger
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(tasks domain.TaskRepository, logger domain.Logger) *CompleteTask {
	return &CompleteTask{tasks: tasks, logger: logger}
}

// Execute sets done. Completing a done task succeeds without changing it.
func (uc *CompleteTask) Execute(ctx context.Context, in CompleteTaskInput) (*CompleteTaskOutput, error) {
	var changed bool
	task, err := shared.MutateTask(ctx, uc.tasks, in.Ref, func(t *domain.Task) error {
		changed = !t.Done
		t.Done = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("complete task: %w", err)
	}

	if changed {
		uc.logger.Info(task.ID, "task", "marked Completed")
	}
	return &CompleteTaskOutput{Task: task, Changed: changed}, nil
}
