package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrValidation      = errors.New("invalid task")
	ErrTaskNotFound    = errors.New("task not found")
	ErrIndexOutOfRange = errors.New("task position out of range")
	ErrAmbiguousRef    = errors.New("task reference matches more than one task")
	ErrStorage         = errors.New("storage unavailable")
	ErrConfigExists    = errors.New("config file already exists")
	ErrUnknownFormat   = errors.New("unknown format")
	ErrUnknownBackend  = errors.New("unknown store backend")
)

// Validation errors. All of them match ErrValidation with errors.Is.
var (
	ErrEmptyName     = fmt.Errorf("%w: task name cannot be empty", ErrValidation)
	ErrEmptyDate     = fmt.Errorf("%w: task date cannot be empty", ErrValidation)
	ErrEmptyCategory = fmt.Errorf("%w: task category cannot be empty", ErrValidation)
	ErrInvalidDate   = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	ErrNegativeTime  = fmt.Errorf("%w: time spent cannot be negative", ErrValidation)
	ErrEmptyID       = fmt.Errorf("%w: task id cannot be empty", ErrValidation)
)

// IsRecoverable reports whether err is a stale-reference error.
// Callers should reload the task list and drop the command.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrTaskNotFound) || errors.Is(err, ErrIndexOutOfRange)
}
