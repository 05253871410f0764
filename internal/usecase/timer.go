package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/timer"
	"github.com/runoshun/tally/internal/usecase/shared"
)

// TimerAction selects what TimerControl does.
type TimerAction string

// Timer actions.
const (
	TimerStart  TimerAction = "start"
	TimerStop   TimerAction = "stop"
	TimerToggle TimerAction = "toggle"
	TimerReset  TimerAction = "reset"
	TimerShow   TimerAction = "show"
)

// TimerInput contains the parameters for a timer operation.
type TimerInput struct {
	Ref    string
	Action TimerAction
}

// TimerOutput contains the task and its timer after the operation.
type TimerOutput struct {
	Task  *domain.Task
	State timer.State
}

// TimerControl is the use case for starting, stopping and resetting task timers.
type TimerControl struct {
	tasks  domain.TaskRepository
	timers *timer.Registry
	logger domain.Logger
}

// NewTimerControl creates a new TimerControl use case.
func NewTimerControl(tasks domain.TaskRepository, timers *timer.Registry, logger domain.Logger) *TimerControl {
	return &TimerControl{
		tasks:  tasks,
		timers: timers,
		logger: logger,
	}
}

// Execute resolves the task and applies the action to its timer.
// A first start is seeded from the task's persisted time spent.
func (uc *TimerControl) Execute(ctx context.Context, in TimerInput) (*TimerOutput, error) {
	task, err := shared.GetTask(ctx, uc.tasks, in.Ref)
	if err != nil {
		return nil, fmt.Errorf("%s timer: %w", in.Action, err)
	}

	var st timer.State
	switch in.Action {
	case TimerStart:
		st = uc.timers.Start(task.ID, task.TimeSpent)
	case TimerStop:
		st, err = uc.timers.Stop(ctx, task.ID)
	case TimerToggle:
		st, err = uc.timers.Toggle(ctx, task.ID, task.TimeSpent)
	case TimerReset:
		st, err = uc.timers.Reset(ctx, task.ID)
	case TimerShow:
		st = uc.timers.Snapshot(task.ID)
		if !st.Running && st.Seconds == 0 {
			st.Seconds = task.TimeSpent
		}
	default:
		return nil, fmt.Errorf("unknown timer action %q", in.Action)
	}
	if err != nil {
		return nil, fmt.Errorf("%s timer: %w", in.Action, err)
	}

	task.TimeSpent = st.Seconds
	if in.Action != TimerShow {
		uc.logger.Info(task.ID, "timer", fmt.Sprintf("%s at %s", in.Action, st.Display()))
	}
	return &TimerOutput{Task: task, State: st}, nil
}
