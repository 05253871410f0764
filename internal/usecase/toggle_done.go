package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/usecase/shared"
)

// ToggleDoneInput contains the parameters for flipping a task's done state.
type ToggleDoneInput struct {
	Ref string
}

// ToggleDoneOutput contains the result of flipping a task's done state.
type ToggleDoneOutput struct {
	Task *domain.Task
}

// ToggleDone is the use case for flipping the done flag of a task.
type ToggleDone struct {
	tasks  domain.TaskRepository
	logger domain.Logger
}

// NewToggleDone creates a new ToggleDone use case.
func NewToggleDone(tasks domain.TaskRepository, logger domain.Logger) *ToggleDone {
	return &ToggleDone{tasks: tasks, logger: logger}
}

// Execute flips the done flag.
func (uc *ToggleDone) Execute(ctx context.Context, in ToggleDoneInput) (*ToggleDoneOutput, error) {
	task, err := shared.MutateTask(ctx, uc.tasks, in.Ref, func(t *domain.Task) error {
		t.Done = !t.Done
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}

	uc.logger.Info(task.ID, "task", "marked "+task.Status())
	return &ToggleDoneOutput{Task: task}, nil
}
