package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/tally/internal/domain"
)

// View renders the TUI.
func (m *Model) View() string {
	var content string
	switch m.mode {
	case ModeHelp:
		content = m.viewHelp()
	case ModeSummary:
		content = m.viewSummary()
	case ModeNormal, ModeConfirm, ModeAdd:
		content = m.viewMain()
	}
	return m.styles.App.Render(content)
}

// viewMain renders the task list with any open dialog below it.
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render(fmt.Sprintf("tally  %d tasks", len(m.tasks))))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.ErrorMsg.Render("Error: "+m.err.Error()) + "\n\n")
	}

	b.WriteString(m.viewTaskList())

	switch m.mode {
	case ModeConfirm:
		b.WriteString("\n" + m.viewConfirmDialog())
	case ModeAdd:
		b.WriteString("\n" + m.viewAddForm())
	case ModeNormal, ModeSummary, ModeHelp:
	}

	b.WriteString(m.viewFooter())
	return b.String()
}

func (m *Model) viewTaskList() string {
	if len(m.tasks) == 0 {
		return m.styles.EmptyText.Render("No tasks yet. Press a to add one.") + "\n"
	}

	var b strings.Builder
	for i, lt := range m.tasks {
		b.WriteString(m.renderTaskRow(lt.Task, lt.Position, i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTaskRow renders one task as: cursor, position, check, time, name, category, date.
func (m *Model) renderTaskRow(t *domain.Task, position int, selected bool) string {
	cursor := "  "
	nameStyle := m.styles.TaskNormal
	if selected {
		cursor = m.styles.CursorSelected.Render("> ")
		nameStyle = m.styles.TaskSelected
	}
	if t.Done {
		nameStyle = m.styles.TaskDone
	}

	check := "[ ]"
	if t.Done {
		check = "[x]"
	}

	st := m.timerState(t)
	timeStyle := m.styles.Time
	marker := " "
	if st.Running {
		timeStyle = m.styles.TimeRunning
		marker = "*"
	}

	return fmt.Sprintf("%s%3d %s %s%s %s  %s  %s",
		cursor,
		position,
		check,
		timeStyle.Render(st.Display()),
		marker,
		nameStyle.Render(t.Name),
		m.styles.Category.Render(t.Category),
		m.styles.Date.Render(t.Date),
	)
}

func (m *Model) viewConfirmDialog() string {
	name := m.confirmID.Short()
	for _, lt := range m.tasks {
		if lt.Task.ID == m.confirmID {
			name = lt.Task.Name
			break
		}
	}
	body := m.styles.DialogTitle.Render("Delete task?") + "\n" +
		fmt.Sprintf("%q will be removed with its tracked time.", name) + "\n\n" +
		"[y] delete  [n/esc] cancel"
	return m.styles.Dialog.Render(body) + "\n"
}

func (m *Model) viewAddForm() string {
	labels := [fieldCount]string{"Name", "Date", "Category"}
	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render("New task"))
	b.WriteString("\n")
	for i := range m.inputs {
		b.WriteString(m.styles.InputPrompt.Render(labels[i]))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n[tab] next field  [enter] save  [esc] cancel")
	return m.styles.Dialog.Render(b.String()) + "\n"
}

// viewSummary renders the completed tasks of m.summaryDate.
func (m *Model) viewSummary() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("Summary for " + m.summaryDate))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.ErrorMsg.Render("Error: "+m.err.Error()) + "\n\n")
	}

	switch {
	case m.summary == nil || m.summary.Date != m.summaryDate:
		b.WriteString(m.styles.EmptyText.Render("Loading...") + "\n")
	case m.summary.Empty():
		b.WriteString(m.styles.EmptyText.Render(domain.EmptySummaryNotice) + "\n")
	default:
		b.WriteString(m.styles.SummaryTotal.Render(fmt.Sprintf("Completed: %d  Total time: %s",
			m.summary.CompletedCount, domain.FormatDuration(m.summary.TotalTimeSpent))))
		b.WriteString("\n\n")
		for _, t := range m.summary.Tasks {
			b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
				m.styles.Time.Render(domain.FormatDuration(t.TimeSpent)),
				m.styles.TaskNormal.Render(t.Name),
				m.styles.Category.Render(t.Category),
			))
		}
	}

	b.WriteString(m.styles.Footer.Render("←/h prev day  →/l next day  t today  esc back"))
	return b.String()
}

func (m *Model) viewFooter() string {
	return m.styles.Footer.Render(m.help.View(m.keys))
}

func (m *Model) viewHelp() string {
	title := m.styles.Header.Render("Keys")
	m.help.ShowAll = true
	defer func() { m.help.ShowAll = false }()
	return lipgloss.JoinVertical(lipgloss.Left, title, m.help.View(m.keys))
}
