package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/usecase"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case MsgTasksLoaded:
		m.tasks = msg.Tasks
		if m.selectID != "" {
			m.selectTask(m.selectID)
			m.selectID = ""
		}
		m.clampCursor()
		return m, nil

	case MsgSummaryLoaded:
		m.summary = msg.Summary
		return m, nil

	case MsgTaskChanged:
		m.err = nil
		return m, m.reload()

	case MsgTaskCreated:
		m.err = nil
		m.mode = ModeNormal
		m.resetForm()
		m.selectID = msg.ID
		return m, m.loadTasks()

	case MsgError:
		// A task removed elsewhere: reload and drop the command.
		if domain.IsRecoverable(msg.Err) {
			m.mode = ModeNormal
			m.confirmID = ""
			return m, m.reload()
		}
		m.err = msg.Err
		if m.mode == ModeConfirm {
			m.mode = ModeNormal
			m.confirmID = ""
		}
		return m, nil

	case MsgTick:
		return m, m.tick()
	}

	return m, nil
}

// reload refreshes the list, and the summary when it is on screen.
func (m *Model) reload() tea.Cmd {
	if m.mode == ModeSummary {
		return tea.Batch(m.loadTasks(), m.loadSummary())
	}
	return m.loadTasks()
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeAdd:
		return m.handleAddMode(msg)
	case ModeSummary:
		return m.handleSummaryMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	case ModeNormal:
		return m.handleNormalMode(msg)
	}
	return m, nil
}

func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.mode = ModeAdd
		m.err = nil
		m.resetForm()
		return m, m.inputs[fieldName].Focus()

	case key.Matches(msg, m.keys.Summary):
		m.mode = ModeSummary
		m.summary = nil
		return m, m.loadSummary()

	case key.Matches(msg, m.keys.Refresh):
		m.err = nil
		return m, m.loadTasks()

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.err = nil
		return m, nil
	}

	task := m.SelectedTask()
	if task == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		return m, m.action(task.ID, func(ctx context.Context, ref string) error {
			_, err := m.container.ToggleDoneUseCase().Execute(ctx, usecase.ToggleDoneInput{Ref: ref})
			return err
		})

	case key.Matches(msg, m.keys.Timer):
		return m, m.timerAction(task.ID, usecase.TimerToggle)

	case key.Matches(msg, m.keys.Reset):
		return m, m.timerAction(task.ID, usecase.TimerReset)

	case key.Matches(msg, m.keys.Delete):
		m.mode = ModeConfirm
		m.confirmID = task.ID
		return m, nil
	}

	return m, nil
}

func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		id := m.confirmID
		m.mode = ModeNormal
		m.confirmID = ""
		return m, m.action(id, func(ctx context.Context, ref string) error {
			_, err := m.container.DeleteTaskUseCase().Execute(ctx, usecase.DeleteTaskInput{Ref: ref})
			return err
		})

	case key.Matches(msg, m.keys.Escape), msg.String() == "n", msg.String() == "N":
		m.mode = ModeNormal
		m.confirmID = ""
		return m, nil
	}
	return m, nil
}

func (m *Model) handleAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.err = nil
		m.resetForm()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		step := 1
		if msg.String() == "shift+tab" {
			step = fieldCount - 1
		}
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + step) % fieldCount
		return m, m.inputs[m.focus].Focus()

	case key.Matches(msg, m.keys.Submit):
		return m, m.submitTask()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) handleSummaryMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Summary):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, m.keys.PrevDay):
		return m, m.shiftSummary(-1)

	case key.Matches(msg, m.keys.NextDay):
		return m, m.shiftSummary(1)

	case key.Matches(msg, m.keys.Today):
		m.summaryDate = m.container.Clock.Now().Format(domain.DateLayout)
		return m, m.loadSummary()
	}
	return m, nil
}

func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape, m.keys.Help, m.keys.Quit) {
		m.mode = ModeNormal
	}
	return m, nil
}

// shiftSummary moves the summary view by days.
func (m *Model) shiftSummary(days int) tea.Cmd {
	next, err := domain.ShiftDate(m.summaryDate, days)
	if err != nil {
		m.err = err
		return nil
	}
	m.summaryDate = next
	return m.loadSummary()
}

// action runs fn against the task id and reports the outcome as a message.
func (m *Model) action(id domain.TaskID, fn func(ctx context.Context, ref string) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(context.Background(), string(id)); err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskChanged{ID: id}
	}
}

func (m *Model) timerAction(id domain.TaskID, action usecase.TimerAction) tea.Cmd {
	return m.action(id, func(ctx context.Context, ref string) error {
		_, err := m.container.TimerControlUseCase().Execute(ctx, usecase.TimerInput{Ref: ref, Action: action})
		return err
	})
}

// submitTask saves the add form.
func (m *Model) submitTask() tea.Cmd {
	in := usecase.AddTaskInput{
		Name:     m.inputs[fieldName].Value(),
		Date:     strings.TrimSpace(m.inputs[fieldDate].Value()),
		Category: m.inputs[fieldCategory].Value(),
	}
	if in.Date == "" {
		in.Date = "today"
	}
	return func() tea.Msg {
		out, err := m.container.AddTaskUseCase().Execute(context.Background(), in)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskCreated{ID: out.Task.ID}
	}
}
