package tui

import "github.com/charmbracelet/lipgloss"

// Palette holds the colors the styles are built from.
// Each color adapts to light and dark terminals.
type Palette struct {
	Accent  lipgloss.AdaptiveColor
	Soft    lipgloss.AdaptiveColor
	Text    lipgloss.AdaptiveColor
	Focus   lipgloss.AdaptiveColor
	Dim     lipgloss.AdaptiveColor
	Running lipgloss.AdaptiveColor
	Good    lipgloss.AdaptiveColor
	Bad     lipgloss.AdaptiveColor
}

// DefaultPalette is used by DefaultStyles.
var DefaultPalette = Palette{
	Accent:  lipgloss.AdaptiveColor{Light: "#5A4BD1", Dark: "#6C5CE7"},
	Soft:    lipgloss.AdaptiveColor{Light: "#7E74D8", Dark: "#A29BFE"},
	Text:    lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#DFE6E9"},
	Focus:   lipgloss.AdaptiveColor{Light: "#B7791F", Dark: "#FFEAA7"},
	Dim:     lipgloss.AdaptiveColor{Light: "#8A9399", Dark: "#636E72"},
	Running: lipgloss.AdaptiveColor{Light: "#D35400", Dark: "#FDCB6E"},
	Good:    lipgloss.AdaptiveColor{Light: "#00876A", Dark: "#00B894"},
	Bad:     lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#D63031"},
}

// Styles contains the lipgloss styles used by the views.
type Styles struct {
	App    lipgloss.Style
	Header lipgloss.Style

	// Task rows
	TaskNormal     lipgloss.Style
	TaskSelected   lipgloss.Style
	TaskDone       lipgloss.Style
	Category       lipgloss.Style
	Date           lipgloss.Style
	Time           lipgloss.Style
	TimeRunning    lipgloss.Style
	CursorSelected lipgloss.Style

	// Dialogs
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	InputPrompt lipgloss.Style

	SummaryTotal lipgloss.Style

	Footer    lipgloss.Style
	ErrorMsg  lipgloss.Style
	EmptyText lipgloss.Style
}

// DefaultStyles returns NewStyles(DefaultPalette).
func DefaultStyles() Styles {
	return NewStyles(DefaultPalette)
}

// NewStyles builds the view styles from p.
func NewStyles(p Palette) Styles {
	fg := func(c lipgloss.AdaptiveColor) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	title := fg(p.Accent).Bold(true).MarginBottom(1)

	return Styles{
		App:    lipgloss.NewStyle().Padding(1, 2),
		Header: title,

		TaskNormal:     fg(p.Text),
		TaskSelected:   fg(p.Focus).Bold(true),
		TaskDone:       fg(p.Dim).Strikethrough(true),
		Category:       fg(p.Soft).Italic(true),
		Date:           fg(p.Dim),
		Time:           fg(p.Text),
		TimeRunning:    fg(p.Running).Bold(true),
		CursorSelected: fg(p.Focus).Bold(true),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(1, 2),
		DialogTitle: title,
		InputPrompt: fg(p.Soft).Width(10),

		SummaryTotal: fg(p.Good).Bold(true),

		Footer:    fg(p.Dim).MarginTop(1),
		ErrorMsg:  fg(p.Bad).Bold(true),
		EmptyText: fg(p.Dim).Italic(true),
	}
}
