// Package logging writes tally's operational log.
//
// Every entry goes to <data>/logs/tally.log. Entries about a task are also
// appended to <data>/logs/task-<id8>.log so one task's history can be read
// on its own.
package logging

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/runoshun/tally/internal/domain"
)

var _ domain.Logger = (*Logger)(nil)

// Logger appends leveled entries to files under the data directory.
// Files are opened on first use and kept open until Close.
type Logger struct {
	files   map[string]*os.File
	now     func() time.Time
	dataDir string
	mu      sync.Mutex
	level   slog.Level
}

// New returns a Logger rooted at dataDir. An empty dataDir disables logging.
func New(dataDir string, level slog.Level) *Logger {
	return &Logger{
		files:   make(map[string]*os.File),
		now:     time.Now,
		dataDir: dataDir,
		level:   level,
	}
}

// ParseLevel maps debug, info, warn or error (any case) to a slog level.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func (l *Logger) Debug(taskID domain.TaskID, category, msg string) {
	l.write(slog.LevelDebug, taskID, category, msg)
}

func (l *Logger) Info(taskID domain.TaskID, category, msg string) {
	l.write(slog.LevelInfo, taskID, category, msg)
}

func (l *Logger) Warn(taskID domain.TaskID, category, msg string) {
	l.write(slog.LevelWarn, taskID, category, msg)
}

func (l *Logger) Error(taskID domain.TaskID, category, msg string) {
	l.write(slog.LevelError, taskID, category, msg)
}

// Close closes every open file. Logging afterwards reopens them.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error
	for path, f := range l.files {
		errs = append(errs, f.Close())
		delete(l.files, path)
	}
	return errors.Join(errs...)
}

func (l *Logger) write(level slog.Level, taskID domain.TaskID, category, msg string) {
	if l.dataDir == "" || level < l.level {
		return
	}

	line := []byte(entry(l.now(), level, taskID, category, msg))
	targets := []string{domain.GlobalLogPath(l.dataDir)}
	if taskID != "" {
		targets = append(targets, domain.TaskLogPath(l.dataDir, taskID))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, path := range targets {
		f, err := l.file(path)
		if err != nil {
			// Logging never fails the caller.
			continue
		}
		_, _ = f.Write(line)
	}
}

// file returns the open handle for path. l.mu must be held.
func (l *Logger) file(path string) (*os.File, error) {
	if f, ok := l.files[path]; ok {
		return f, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // owner and group may read logs
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	l.files[path] = f
	return f, nil
}

// entry renders one line:
//
//	[2025-12-30 09:32:51] [INFO] [task-3f2a9c1e] [category] message
func entry(t time.Time, level slog.Level, taskID domain.TaskID, category, msg string) string {
	scope := "global"
	if taskID != "" {
		scope = "task-" + taskID.Short()
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n", t.Format(time.DateTime), level, scope, category, msg)
}
