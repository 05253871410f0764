// Package tui provides the terminal user interface for tally.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal  Mode = iota // Task list navigation
	ModeConfirm             // Delete confirmation dialog
	ModeAdd                 // New task form
	ModeSummary             // Daily summary view
	ModeHelp                // Help overlay
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeConfirm:
		return "confirm"
	case ModeAdd:
		return "add"
	case ModeSummary:
		return "summary"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	return m == ModeAdd
}
