package domain

import (
	"strings"
	"time"
)

// DateLayout is the storage format of task dates.
const DateLayout = "2006-01-02"

// MonthLayout is the format of month filters.
const MonthLayout = "2006-01"

// inputLayouts are the accepted date inputs besides DateLayout.
var inputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006/01/02",
}

// ParseDate normalizes a date string to YYYY-MM-DD.
// Timestamps keep the calendar day of their own offset.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyDate
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.Format(DateLayout), nil
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	return "", ErrInvalidDate
}

// ResolveDate is ParseDate plus the relative keywords today, yesterday and
// tomorrow, evaluated in now's location.
func ResolveDate(s string, now time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return now.Format(DateLayout), nil
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(DateLayout), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format(DateLayout), nil
	}
	return ParseDate(s)
}

// ParseMonth normalizes a month string to YYYY-MM.
func ParseMonth(s string) (string, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(MonthLayout), nil
}

// ShiftDate moves a YYYY-MM-DD date by the given number of days.
func ShiftDate(date string, days int) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.AddDate(0, 0, days).Format(DateLayout), nil
}
