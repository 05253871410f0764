// Package domain contains core business entities and interfaces.
package domain

import (
	"strings"

	"github.com/google/uuid"
)

// TaskID is the stable identifier of a task.
// It is assigned once at creation and never reused, so list positions can
// shift without invalidating references held by timers or clients.
type TaskID string

// NewTaskID returns a fresh random task ID.
func NewTaskID() TaskID {
	return TaskID(uuid.NewString())
}

// Short returns the first 8 characters of the ID for display.
func (id TaskID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// Task represents a work item with a due date, a category and tracked time.
// Fields are ordered to minimize memory padding.
//
// JSON field names are the persisted layout and must not change.
type Task struct {
	ID        TaskID `json:"id" yaml:"id"`
	Name      string `json:"taskName" yaml:"name"`
	Date      string `json:"taskDate" yaml:"date"` // YYYY-MM-DD
	Category  string `json:"taskCategory" yaml:"category"`
	TimeSpent int    `json:"timeSpent" yaml:"timeSpent"` // Seconds
	Done      bool   `json:"done" yaml:"done"`
}

// TaskFields holds the user-editable fields of a task.
type TaskFields struct {
	Name     string
	Date     string
	Category string
}

// Normalize trims the text fields and converts the date to YYYY-MM-DD.
// It returns a validation error if any field is empty or the date is invalid.
func (f TaskFields) Normalize() (TaskFields, error) {
	out := TaskFields{
		Name:     strings.TrimSpace(f.Name),
		Date:     strings.TrimSpace(f.Date),
		Category: strings.TrimSpace(f.Category),
	}
	if out.Name == "" {
		return TaskFields{}, ErrEmptyName
	}
	if out.Date == "" {
		return TaskFields{}, ErrEmptyDate
	}
	if out.Category == "" {
		return TaskFields{}, ErrEmptyCategory
	}
	date, err := ParseDate(out.Date)
	if err != nil {
		return TaskFields{}, err
	}
	out.Date = date
	return out, nil
}

// NewTask creates a pending task with no tracked time from validated fields.
func NewTask(id TaskID, f TaskFields) (*Task, error) {
	nf, err := f.Normalize()
	if err != nil {
		return nil, err
	}
	return &Task{
		ID:       id,
		Name:     nf.Name,
		Date:     nf.Date,
		Category: nf.Category,
	}, nil
}

// Apply replaces the editable fields, keeping done and time spent.
func (t *Task) Apply(f TaskFields) error {
	nf, err := f.Normalize()
	if err != nil {
		return err
	}
	t.Name = nf.Name
	t.Date = nf.Date
	t.Category = nf.Category
	return nil
}

// Validate checks the persisted invariants of a task.
func (t *Task) Validate() error {
	if t.ID == "" {
		return ErrEmptyID
	}
	if _, err := (TaskFields{Name: t.Name, Date: t.Date, Category: t.Category}).Normalize(); err != nil {
		return err
	}
	if t.TimeSpent < 0 {
		return ErrNegativeTime
	}
	return nil
}

// Status returns the display status of the task.
func (t *Task) Status() string {
	if t.Done {
		return "Completed"
	}
	return "Pending"
}

// Clone returns a copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}
