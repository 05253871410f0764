// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tally/internal/domain"
)

// AddTaskInput contains the parameters for creating a task.
type AddTaskInput struct {
	Name     string // Task name (required)
	Date     string // YYYY-MM-DD, timestamp or today/yesterday/tomorrow (required)
	Category string // Category (required)
}

// AddTaskOutput contains the result of creating a task.
type AddTaskOutput struct {
	Task     *domain.Task // The created task
	Position int          // 1-based position in the list
}

// AddTask is the use case for appending a task to the list.
type AddTask struct {
	tasks  domain.TaskRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewAddTask creates a new AddTask use case.
func NewAddTask(tasks domain.TaskRepository, clock domain.Clock, logger domain.Logger) *AddTask {
	return &AddTask{
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// Execute validates the input and appends a pending task with no tracked time.
func (uc *AddTask) Execute(ctx context.Context, in AddTaskInput) (*AddTaskOutput, error) {
	fields, err := resolveFields(in.Name, in.Date, in.Category, uc.clock)
	if err != nil {
		return nil, err
	}

	task, err := domain.NewTask(domain.NewTaskID(), fields)
	if err != nil {
		return nil, err
	}

	var pos int
	err = uc.tasks.Update(ctx, func(tasks []*domain.Task) ([]*domain.Task, error) {
		tasks = append(tasks, task)
		pos = len(tasks)
		return tasks, nil
	})
	if err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	uc.logger.Info(task.ID, "task", fmt.Sprintf("created %q for %s", task.Name, task.Date))
	return &AddTaskOutput{Task: task.Clone(), Position: pos}, nil
}

// resolveFields expands date keywords before normalizing.
func resolveFields(name, date, category string, clock domain.Clock) (domain.TaskFields, error) {
	if resolved, err := domain.ResolveDate(date, clock.Now()); err == nil {
		date = resolved
	}
	return domain.TaskFields{Name: name, Date: date, Category: category}.Normalize()
}
