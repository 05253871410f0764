package tui

import (
	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/usecase"
)

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgTasksLoaded is sent when tasks are loaded from the repository.
type MsgTasksLoaded struct {
	Tasks []usecase.ListedTask
}

func (MsgTasksLoaded) sealed() {}

// MsgSummaryLoaded is sent when the summary for a day is computed.
type MsgSummaryLoaded struct {
	Summary *domain.DailySummary
}

func (MsgSummaryLoaded) sealed() {}

// MsgTaskChanged is sent after a task was created, edited or deleted.
type MsgTaskChanged struct {
	ID domain.TaskID
}

func (MsgTaskChanged) sealed() {}

// MsgTaskCreated is sent when the add form was saved.
type MsgTaskCreated struct {
	ID domain.TaskID
}

func (MsgTaskCreated) sealed() {}

// MsgError is sent when an operation fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// MsgTick is sent once per second to redraw running timers.
type MsgTick struct{}

func (MsgTick) sealed() {}
