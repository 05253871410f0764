package domain

import (
	"context"
	"time"
)

// Slot is a durable key-value cell.
// Backends store opaque bytes; the task list codec lives above them.
type Slot interface {
	// Get returns the value stored under key. ok is false if the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
}

// SlotUpdater is implemented by slots that can read-modify-write a key
// without another writer interleaving.
type SlotUpdater interface {
	Update(ctx context.Context, key string, fn func(cur []byte, ok bool) ([]byte, error)) error
}

// TaskRepository loads and saves the whole task list.
type TaskRepository interface {
	// Load returns the stored task list in order.
	// A missing or unreadable list is returned as empty.
	Load(ctx context.Context) ([]*Task, error)

	// Save overwrites the stored task list.
	Save(ctx context.Context, tasks []*Task) error

	// Update loads the list, passes it to fn and saves what fn returns.
	// Nothing is saved if fn returns an error.
	Update(ctx context.Context, fn func(tasks []*Task) ([]*Task, error)) error
}

// TimeSink receives elapsed seconds flushed by running timers.
type TimeSink interface {
	SetTimeSpent(ctx context.Context, id TaskID, seconds int) error
}

// Ticker registers periodic callbacks.
type Ticker interface {
	// Every calls fn once per interval until the returned cancel func is called.
	// Calls for one registration never overlap.
	Every(interval time.Duration, fn func()) (cancel func())
}

// Logger writes operational log entries.
// An empty taskID logs to the global log only.
type Logger interface {
	Debug(taskID TaskID, category, msg string)
	Info(taskID TaskID, category, msg string)
	Warn(taskID TaskID, category, msg string)
	Error(taskID TaskID, category, msg string)
}

// NopLogger discards every entry.
type NopLogger struct{}

func (NopLogger) Debug(TaskID, string, string) {}
func (NopLogger) Info(TaskID, string, string)  {}
func (NopLogger) Warn(TaskID, string, string)  {}
func (NopLogger) Error(TaskID, string, string) {}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults + global + explicit file).
	Load() (*Config, error)
}

// ConfigInfo describes one configuration file.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager inspects and writes configuration files.
type ConfigManager interface {
	// GlobalConfigInfo returns the global config file info.
	GlobalConfigInfo() ConfigInfo

	// InitGlobalConfig writes the template to the global config path.
	// It returns ErrConfigExists unless force is set.
	InitGlobalConfig(force bool) (path string, err error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
