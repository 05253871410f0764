// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/tally/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockTaskRepository is a test double for domain.TaskRepository.
// Stored tasks are cloned on the way in and out so callers cannot mutate them in place.
type MockTaskRepository struct {
	LoadErr   error
	SaveErr   error
	Tasks     []*domain.Task
	SaveCalls int
	mu        sync.Mutex
}

// NewMockTaskRepository creates a repository holding copies of tasks.
func NewMockTaskRepository(tasks ...*domain.Task) *MockTaskRepository {
	m := &MockTaskRepository{}
	for _, t := range tasks {
		m.Tasks = append(m.Tasks, t.Clone())
	}
	return m
}

// Load returns a copy of the stored list.
func (m *MockTaskRepository) Load(_ context.Context) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load()
}

// Save replaces the stored list.
func (m *MockTaskRepository) Save(_ context.Context, tasks []*domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save(tasks)
}

// Update applies fn to a copy of the list and saves the result.
func (m *MockTaskRepository) Update(_ context.Context, fn func([]*domain.Task) ([]*domain.Task, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tasks, err := m.load()
	if err != nil {
		return err
	}
	next, err := fn(tasks)
	if err != nil {
		return err
	}
	return m.save(next)
}

// Snapshot returns a copy of the stored list without going through LoadErr.
func (m *MockTaskRepository) Snapshot() []*domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneAll(m.Tasks)
}

// Find returns a copy of the stored task with id, or nil.
func (m *MockTaskRepository) Find(id domain.TaskID) *domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.Tasks {
		if t.ID == id {
			return t.Clone()
		}
	}
	return nil
}

func (m *MockTaskRepository) load() ([]*domain.Task, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return cloneAll(m.Tasks), nil
}

func (m *MockTaskRepository) save(tasks []*domain.Task) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.SaveCalls++
	m.Tasks = cloneAll(tasks)
	return nil
}

func cloneAll(tasks []*domain.Task) []*domain.Task {
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Clone())
	}
	return out
}

// MockSlot is an in-memory domain.Slot.
// It does not implement domain.SlotUpdater.
type MockSlot struct {
	GetErr error
	SetErr error
	Data   map[string][]byte
	mu     sync.Mutex
}

// NewMockSlot creates an empty MockSlot.
func NewMockSlot() *MockSlot {
	return &MockSlot{Data: make(map[string][]byte)}
}

// Get returns the stored value.
func (m *MockSlot) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	v, ok := m.Data[key]
	return v, ok, nil
}

// Set stores value.
func (m *MockSlot) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Data[key] = append([]byte(nil), value...)
	return nil
}

// ManualTicker is a domain.Ticker driven by the test.
// Callbacks run synchronously inside Tick.
type ManualTicker struct {
	regs      map[int]func()
	Intervals []time.Duration
	next      int
	mu        sync.Mutex
}

// NewManualTicker creates a ManualTicker with no registrations.
func NewManualTicker() *ManualTicker {
	return &ManualTicker{regs: make(map[int]func())}
}

// Every records the registration; fn runs on each Tick until cancelled.
func (m *ManualTicker) Every(interval time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.next
	m.next++
	m.regs[id] = fn
	m.Intervals = append(m.Intervals, interval)

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.regs, id)
	}
}

// Tick fires every active registration n times.
func (m *ManualTicker) Tick(n int) {
	for i := 0; i < n; i++ {
		for _, fn := range m.active() {
			fn()
		}
	}
}

// Captured returns the callbacks active right now.
// Calling one after it was cancelled simulates a tick already queued at cancel time.
func (m *ManualTicker) Captured() []func() {
	return m.active()
}

// Active returns the number of live registrations.
func (m *ManualTicker) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.regs)
}

func (m *ManualTicker) active() []func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	fns := make([]func(), 0, len(m.regs))
	for i := 0; i < m.next; i++ {
		if fn, ok := m.regs[i]; ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

// LogEntry is one entry captured by MockLogger.
type LogEntry struct {
	TaskID   domain.TaskID
	Level    string
	Category string
	Msg      string
}

// MockLogger records log entries.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) add(level string, taskID domain.TaskID, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{TaskID: taskID, Level: level, Category: category, Msg: msg})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(taskID domain.TaskID, category, msg string) {
	m.add("DEBUG", taskID, category, msg)
}

// Info records an info entry.
func (m *MockLogger) Info(taskID domain.TaskID, category, msg string) {
	m.add("INFO", taskID, category, msg)
}

// Warn records a warning entry.
func (m *MockLogger) Warn(taskID domain.TaskID, category, msg string) {
	m.add("WARN", taskID, category, msg)
}

// Error records an error entry.
func (m *MockLogger) Error(taskID domain.TaskID, category, msg string) {
	m.add("ERROR", taskID, category, msg)
}

// Count returns the number of entries at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockTimeSink records flushed seconds per task.
type MockTimeSink struct {
	Err     error
	ErrFor  map[domain.TaskID]error
	Flushes []Flush
	mu      sync.Mutex
}

// Flush is one SetTimeSpent call captured by MockTimeSink.
type Flush struct {
	ID      domain.TaskID
	Seconds int
}

// SetTimeSpent records the flush and returns the configured error.
func (m *MockTimeSink) SetTimeSpent(_ context.Context, id domain.TaskID, seconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.ErrFor[id]; ok {
		return err
	}
	if m.Err != nil {
		return m.Err
	}
	m.Flushes = append(m.Flushes, Flush{ID: id, Seconds: seconds})
	return nil
}

// Last returns the last flushed value for id.
func (m *MockTimeSink) Last(id domain.TaskID) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.Flushes) - 1; i >= 0; i-- {
		if m.Flushes[i].ID == id {
			return m.Flushes[i].Seconds, true
		}
	}
	return 0, false
}

// Count returns the number of flushes recorded for id.
func (m *MockTimeSink) Count(id domain.TaskID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, f := range m.Flushes {
		if f.ID == id {
			n++
		}
	}
	return n
}

// NewTask builds a valid task for tests.
func NewTask(id, name, date string) *domain.Task {
	return &domain.Task{
		ID:       domain.TaskID(id),
		Name:     name,
		Date:     date,
		Category: "work",
	}
}

// String implements fmt.Stringer for readable assertion output.
func (f Flush) String() string {
	return fmt.Sprintf("%s=%d", f.ID, f.Seconds)
}
