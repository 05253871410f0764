package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/tally/internal/app"
	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/timer"
	"github.com/runoshun/tally/internal/usecase"
)

// Add form fields.
const (
	fieldName = iota
	fieldDate
	fieldCategory
	fieldCount
)

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies
	container *app.Container
	err       error
	summary   *domain.DailySummary

	// State
	tasks []usecase.ListedTask

	// Components
	keys   KeyMap
	styles Styles
	help   help.Model
	inputs [fieldCount]textinput.Model

	// Summary date shown in ModeSummary (YYYY-MM-DD)
	summaryDate string
	confirmID   domain.TaskID
	selectID    domain.TaskID // Cursor target once the next load arrives

	mode   Mode
	cursor int
	focus  int
	width  int
	height int
}

// New creates a new TUI Model with the given container.
func New(c *app.Container) *Model {
	placeholders := [fieldCount]string{"Task name", "today", "Category"}
	var inputs [fieldCount]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 200
		inputs[i] = ti
	}

	return &Model{
		container:   c,
		mode:        ModeNormal,
		keys:        DefaultKeyMap(),
		styles:      DefaultStyles(),
		help:        help.New(),
		inputs:      inputs,
		summaryDate: c.Clock.Now().Format(domain.DateLayout),
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadTasks(),
		m.tick(),
	)
}

// tick schedules the next redraw of running timers.
func (m *Model) tick() tea.Cmd {
	return tea.Tick(timer.TickInterval, func(time.Time) tea.Msg {
		return MsgTick{}
	})
}

// loadTasks returns a command that loads tasks from the repository.
func (m *Model) loadTasks() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ListTasksUseCase().Execute(context.Background(), usecase.ListTasksInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTasksLoaded{Tasks: out.Tasks}
	}
}

// loadSummary returns a command that summarizes m.summaryDate.
func (m *Model) loadSummary() tea.Cmd {
	date := m.summaryDate
	return func() tea.Msg {
		out, err := m.container.SummarizeUseCase().Execute(context.Background(), usecase.SummarizeInput{Date: date})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgSummaryLoaded{Summary: out.Summary}
	}
}

// SelectedTask returns the task under the cursor, or nil if the list is empty.
func (m *Model) SelectedTask() *domain.Task {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return nil
	}
	return m.tasks[m.cursor].Task
}

// Mode returns the current UI mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// SummaryDate returns the day shown by the summary view.
func (m *Model) SummaryDate() string {
	return m.summaryDate
}

// timerState returns the live timer for a task, falling back to its persisted time.
func (m *Model) timerState(t *domain.Task) timer.State {
	st := m.container.Timers().Snapshot(t.ID)
	if !st.Running {
		st.Seconds = t.TimeSpent
	}
	return st
}

// clampCursor keeps the cursor inside the list after a reload.
func (m *Model) clampCursor() {
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selectTask moves the cursor to the task with id, if present.
func (m *Model) selectTask(id domain.TaskID) {
	for i, lt := range m.tasks {
		if lt.Task.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *Model) resetForm() {
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].Blur()
	}
	m.focus = fieldName
}
