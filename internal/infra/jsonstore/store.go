// Package jsonstore persists the task list as one JSON array in a domain.Slot.
package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/runoshun/tally/internal/domain"
)

// Ensure Store implements domain.TaskRepository.
var _ domain.TaskRepository = (*Store)(nil)

// legacyNamespace seeds name-based ids for records saved without one.
var legacyNamespace = uuid.MustParse("6f1d3c2a-8b4e-4f6a-9c1d-2e5b7a9f0c31")

// record is the on-disk shape of a task.
// timeSpent is decoded as a float so that values written as 12.0 still load.
type record struct {
	ID        domain.TaskID `json:"id"`
	Name      string        `json:"taskName"`
	Date      string        `json:"taskDate"`
	Category  string        `json:"taskCategory"`
	TimeSpent float64       `json:"timeSpent"`
	Done      bool          `json:"done"`
}

// Store implements domain.TaskRepository on top of a slot.
type Store struct {
	slot   domain.Slot
	logger domain.Logger
	key    string
}

// New creates a Store that keeps the list under key in slot.
func New(slot domain.Slot, key string, logger domain.Logger) *Store {
	if key == "" {
		key = domain.DefaultStoreKey
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Store{slot: slot, key: key, logger: logger}
}

// Load returns the stored task list.
// Absent, empty and corrupt data all load as an empty list.
func (s *Store) Load(ctx context.Context) ([]*domain.Task, error) {
	raw, ok, err := s.slot.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: load tasks: %w", domain.ErrStorage, err)
	}
	if !ok {
		return []*domain.Task{}, nil
	}
	return s.decode(raw), nil
}

// Save overwrites the stored list.
func (s *Store) Save(ctx context.Context, tasks []*domain.Task) error {
	content, err := encode(tasks)
	if err != nil {
		return err
	}
	if err := s.slot.Set(ctx, s.key, content); err != nil {
		return fmt.Errorf("%w: save tasks: %w", domain.ErrStorage, err)
	}
	return nil
}

// Update loads, applies fn and saves in one step.
// Slots implementing domain.SlotUpdater make the step atomic.
func (s *Store) Update(ctx context.Context, fn func([]*domain.Task) ([]*domain.Task, error)) error {
	updater, ok := s.slot.(domain.SlotUpdater)
	if !ok {
		tasks, err := s.Load(ctx)
		if err != nil {
			return err
		}
		next, err := fn(tasks)
		if err != nil {
			return err
		}
		return s.Save(ctx, next)
	}

	var fnErr error
	err := updater.Update(ctx, s.key, func(cur []byte, ok bool) ([]byte, error) {
		tasks := []*domain.Task{}
		if ok {
			tasks = s.decode(cur)
		}
		next, err := fn(tasks)
		if err != nil {
			fnErr = err
			return nil, err
		}
		return encode(next)
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return fmt.Errorf("%w: update tasks: %w", domain.ErrStorage, err)
	}
	return nil
}

func (s *Store) decode(raw []byte) []*domain.Task {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []*domain.Task{}
	}

	var records []*record
	if err := json.Unmarshal(raw, &records); err != nil {
		s.logger.Warn("", "store", fmt.Sprintf("ignoring corrupt task list in %q: %v", s.key, err))
		return []*domain.Task{}
	}

	tasks := make([]*domain.Task, 0, len(records))
	seen := make(map[domain.TaskID]bool, len(records))
	for i, r := range records {
		if r == nil {
			continue
		}
		t := r.toTask()
		if t.ID == "" || seen[t.ID] {
			t.ID = legacyID(i, t)
		}
		seen[t.ID] = true
		if float64(t.TimeSpent) != r.TimeSpent {
			s.logger.Warn(t.ID, "store", fmt.Sprintf("record %d: timeSpent %v loaded as %d", i+1, r.TimeSpent, t.TimeSpent))
		}
		tasks = append(tasks, t)
	}
	return tasks
}

func (r *record) toTask() *domain.Task {
	date := r.Date
	if d, err := domain.ParseDate(date); err == nil {
		date = d
	}

	return &domain.Task{
		ID:        r.ID,
		Name:      r.Name,
		Date:      date,
		Category:  r.Category,
		TimeSpent: clampSeconds(r.TimeSpent),
		Done:      r.Done,
	}
}

// clampSeconds maps a stored timeSpent into [0, MaxInt32] whole seconds.
// Fractions are dropped.
func clampSeconds(v float64) int {
	switch {
	case v <= 0:
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	}
	return int(math.Floor(v))
}

// legacyID derives a stable id from a record's position and content.
func legacyID(pos int, t *domain.Task) domain.TaskID {
	name := fmt.Sprintf("%d\x00%s\x00%s\x00%s", pos, t.Name, t.Date, t.Category)
	return domain.TaskID(uuid.NewSHA1(legacyNamespace, []byte(name)).String())
}

func encode(tasks []*domain.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	content, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return content, nil
}
