package logging

import (
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tally/internal/domain"
)

const (
	taskA domain.TaskID = "aaaaaaaa-1111-4000-8000-000000000001"
	taskB domain.TaskID = "bbbbbbbb-2222-4000-8000-000000000002"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLogger_Info(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info(taskA, "task", "test message")

	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO]")
	assert.Contains(t, string(content), "[task-aaaaaaaa]")
	assert.Contains(t, string(content), "[task]")
	assert.Contains(t, string(content), "test message")

	taskContent, err := os.ReadFile(domain.TaskLogPath(dataDir, taskA))
	require.NoError(t, err)
	assert.Contains(t, string(taskContent), "[task-aaaaaaaa]")
	assert.Contains(t, string(taskContent), "test message")
}

func TestLogger_GlobalLogOnly(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info("", "system", "global message")

	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[global]")
	assert.Contains(t, string(content), "global message")

	entries, err := os.ReadDir(dataDir + "/logs")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the global log file")
}

func TestLogger_LevelFiltering(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelWarn)
	defer func() { _ = logger.Close() }()

	logger.Debug(taskA, "task", "debug message")
	logger.Info(taskA, "task", "info message")
	logger.Warn(taskA, "task", "warn message")
	logger.Error(taskA, "task", "error message")

	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "debug message")
	assert.NotContains(t, string(content), "info message")
	assert.Contains(t, string(content), "warn message")
	assert.Contains(t, string(content), "error message")
}

func TestLogger_DisabledWhenEmptyDataDir(t *testing.T) {
	logger := New("", slog.LevelDebug)
	defer func() { _ = logger.Close() }()

	// Should not panic or create files
	logger.Info(taskA, "task", "test message")
	logger.Debug(taskA, "task", "debug message")
	logger.Warn("", "task", "warn message")
	logger.Error("", "task", "error message")
}

func TestLogger_LogFormat(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	logger.now = func() time.Time { return time.Date(2025, 12, 30, 9, 32, 51, 0, time.UTC) }
	defer func() { _ = logger.Close() }()

	logger.Info(taskA, "usecase", `task created: "my task"`)

	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, `[2025-12-30 09:32:51] [INFO] [task-aaaaaaaa] [usecase] task created: "my task"`, lines[0])
}

func TestLogger_MultipleTaskFiles(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info(taskA, "task", "message for task A")
	logger.Info(taskB, "task", "message for task B")
	logger.Info(taskA, "task", "another message for task A")

	globalContent, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.Contains(t, string(globalContent), "message for task A")
	assert.Contains(t, string(globalContent), "message for task B")
	assert.Contains(t, string(globalContent), "another message for task A")

	aContent, err := os.ReadFile(domain.TaskLogPath(dataDir, taskA))
	require.NoError(t, err)
	assert.Contains(t, string(aContent), "another message for task A")
	assert.NotContains(t, string(aContent), "message for task B")

	bContent, err := os.ReadFile(domain.TaskLogPath(dataDir, taskB))
	require.NoError(t, err)
	assert.Contains(t, string(bContent), "message for task B")
	assert.NotContains(t, string(bContent), "task A")
}

func TestLogger_Close(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)

	logger.Info(taskA, "task", "test message")

	assert.NoError(t, logger.Close())
	assert.FileExists(t, domain.GlobalLogPath(dataDir))
	assert.FileExists(t, domain.TaskLogPath(dataDir, taskA))

	// Logging after Close reopens the files
	logger.Info("", "system", "after close")
	assert.NoError(t, logger.Close())
}
