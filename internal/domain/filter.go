package domain

import "strings"

// TaskFilter specifies criteria for listing tasks.
// Zero value matches every task.
type TaskFilter struct {
	Done   *bool  // nil = any
	Date   string // Exact YYYY-MM-DD
	Month  string // YYYY-MM prefix of the date
	Search string // Case-insensitive substring of name or category
}

// Match reports whether the task satisfies every set criterion.
func (f TaskFilter) Match(t *Task) bool {
	if f.Done != nil && t.Done != *f.Done {
		return false
	}
	if f.Date != "" && t.Date != f.Date {
		return false
	}
	if f.Month != "" && !strings.HasPrefix(t.Date, f.Month+"-") {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Name), q) &&
			!strings.Contains(strings.ToLower(t.Category), q) {
			return false
		}
	}
	return true
}

// Apply returns the matching tasks in their original order.
func (f TaskFilter) Apply(tasks []*Task) []*Task {
	out := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
