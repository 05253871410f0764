// Package shared holds helpers used by several use cases.
package shared

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/runoshun/tally/internal/domain"
)

// minPrefixLen is the shortest id prefix tried for an all-digit ref.
const minPrefixLen = 4

// ResolveRef returns the index in tasks of the task named by ref.
//
// A ref is tried, in order, as:
//
//	full id           "3f2a9c1e-..."
//	#N                1-based position
//	unique id prefix  "3f2a" (all-digit refs need at least 4 characters)
//	N                 1-based position
func ResolveRef(tasks []*domain.Task, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, fmt.Errorf("%w: empty reference", domain.ErrTaskNotFound)
	}

	for i, t := range tasks {
		if string(t.ID) == ref {
			return i, nil
		}
	}

	if n, ok := strings.CutPrefix(ref, "#"); ok {
		return position(tasks, n)
	}

	digits := isDigits(ref)
	if !digits || len(ref) >= minPrefixLen {
		idx, err := byPrefix(tasks, ref)
		if err == nil || !digits {
			return idx, err
		}
	}

	return position(tasks, ref)
}

// FindByID returns the index of the task with id.
func FindByID(tasks []*domain.Task, id domain.TaskID) (int, error) {
	for i, t := range tasks {
		if t.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
}

// GetTask loads the list and returns a copy of the task named by ref.
func GetTask(ctx context.Context, repo domain.TaskRepository, ref string) (*domain.Task, error) {
	tasks, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	idx, err := ResolveRef(tasks, ref)
	if err != nil {
		return nil, err
	}
	return tasks[idx].Clone(), nil
}

// MutateTask resolves ref and applies fn to the task inside one repository update.
// It returns a copy of the task as saved.
func MutateTask(ctx context.Context, repo domain.TaskRepository, ref string, fn func(*domain.Task) error) (*domain.Task, error) {
	var out *domain.Task
	err := repo.Update(ctx, func(tasks []*domain.Task) ([]*domain.Task, error) {
		idx, err := ResolveRef(tasks, ref)
		if err != nil {
			return nil, err
		}
		if err := fn(tasks[idx]); err != nil {
			return nil, err
		}
		out = tasks[idx].Clone()
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func position(tasks []*domain.Task, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1, fmt.Errorf("%w: %q", domain.ErrTaskNotFound, s)
	}
	if n < 1 || n > len(tasks) {
		return -1, fmt.Errorf("%w: %d (have %d tasks)", domain.ErrIndexOutOfRange, n, len(tasks))
	}
	return n - 1, nil
}

func byPrefix(tasks []*domain.Task, prefix string) (int, error) {
	found := -1
	for i, t := range tasks {
		if !strings.HasPrefix(string(t.ID), prefix) {
			continue
		}
		if found >= 0 {
			return -1, fmt.Errorf("%w: %q", domain.ErrAmbiguousRef, prefix)
		}
		found = i
	}
	if found < 0 {
		return -1, fmt.Errorf("%w: %q", domain.ErrTaskNotFound, prefix)
	}
	return found, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
