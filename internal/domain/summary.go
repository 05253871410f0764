package domain

// EmptySummaryNotice is shown for a day with no completed tasks.
const EmptySummaryNotice = "No tasks completed on this day."

// DailySummary is the derived view of the tasks completed on one day.
type DailySummary struct {
	Date           string  // YYYY-MM-DD
	Tasks          []*Task // Completed tasks on Date, in list order
	CompletedCount int
	TotalTimeSpent int // Seconds
}

// Empty reports whether no task was completed on the day.
func (s *DailySummary) Empty() bool {
	return s.CompletedCount == 0
}

// Summarize aggregates the done tasks dated on date.
// date must already be normalized to YYYY-MM-DD.
func Summarize(tasks []*Task, date string) *DailySummary {
	s := &DailySummary{Date: date, Tasks: []*Task{}}
	for _, t := range tasks {
		if t.Date != date || !t.Done {
			continue
		}
		s.Tasks = append(s.Tasks, t)
		s.CompletedCount++
		s.TotalTimeSpent += t.TimeSpent
	}
	return s
}
