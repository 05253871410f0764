package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tally/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Done   *bool  // nil = any
	Date   string // Exact day; keywords allowed
	Month  string // YYYY-MM
	Search string // Case-insensitive substring of name or category
}

// ListedTask is a task with its 1-based position in the full list.
type ListedTask struct {
	Task     *domain.Task
	Position int
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks []ListedTask // Matching tasks in list order
	Total int          // Size of the unfiltered list
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	tasks domain.TaskRepository
	clock domain.Clock
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.TaskRepository, clock domain.Clock) *ListTasks {
	return &ListTasks{tasks: tasks, clock: clock}
}

// Execute returns a snapshot of the tasks matching the input, in list order.
func (uc *ListTasks) Execute(ctx context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	filter := domain.TaskFilter{Done: in.Done, Search: in.Search}

	if in.Date != "" {
		date, err := domain.ResolveDate(in.Date, uc.clock.Now())
		if err != nil {
			return nil, err
		}
		filter.Date = date
	}
	if in.Month != "" {
		month, err := domain.ParseMonth(in.Month)
		if err != nil {
			return nil, err
		}
		filter.Month = month
	}

	tasks, err := uc.tasks.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	out := &ListTasksOutput{Tasks: []ListedTask{}, Total: len(tasks)}
	for i, t := range tasks {
		if filter.Match(t) {
			out.Tasks = append(out.Tasks, ListedTask{Task: t, Position: i + 1})
		}
	}
	return out, nil
}
