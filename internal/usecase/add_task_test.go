package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/testutil"
)

func TestAddTask_Execute_Success(t *testing.T) {
	// Setup
	repo := testutil.NewMockTaskRepository(seedTasks()...)
	logger := &testutil.MockLogger{}
	uc := NewAddTask(repo, newClock(), logger)

	// Execute
	out, err := uc.Execute(context.Background(), AddTaskInput{
		Name:     "  Call Bob ",
		Date:     "2024-03-05T09:30:00Z",
		Category: " calls ",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 4, out.Position)
	assert.NotEmpty(t, out.Task.ID)
	assert.Equal(t, "Call Bob", out.Task.Name)
	assert.Equal(t, "2024-03-05", out.Task.Date)
	assert.Equal(t, "calls", out.Task.Category)
	assert.False(t, out.Task.Done)
	assert.Zero(t, out.Task.TimeSpent)

	stored := repo.Snapshot()
	require.Len(t, stored, 4)
	assert.Equal(t, out.Task, stored[3])
	assert.Equal(t, 1, logger.Count("INFO"))
}

func TestAddTask_Execute_DateKeyword(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	uc := NewAddTask(repo, newClock(), domain.NopLogger{})

	out, err := uc.Execute(context.Background(), AddTaskInput{Name: "n", Date: "yesterday", Category: "c"})

	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", out.Task.Date)
	assert.Equal(t, 1, out.Position)
}

func TestAddTask_Execute_ValidationError(t *testing.T) {
	tests := []struct {
		name    string
		in      AddTaskInput
		wantErr error
	}{
		{"empty name", AddTaskInput{Name: " ", Date: "2024-03-01", Category: "c"}, domain.ErrEmptyName},
		{"empty date", AddTaskInput{Name: "n", Date: "", Category: "c"}, domain.ErrEmptyDate},
		{"empty category", AddTaskInput{Name: "n", Date: "2024-03-01", Category: ""}, domain.ErrEmptyCategory},
		{"bad date", AddTaskInput{Name: "n", Date: "March 1st", Category: "c"}, domain.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockTaskRepository(seedTasks()...)
			uc := NewAddTask(repo, newClock(), domain.NopLogger{})

			_, err := uc.Execute(context.Background(), tt.in)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Zero(t, repo.SaveCalls, "nothing saved")
		})
	}
}

func TestAddTask_Execute_StorageError(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.SaveErr = domain.ErrStorage
	uc := NewAddTask(repo, newClock(), domain.NopLogger{})

	_, err := uc.Execute(context.Background(), AddTaskInput{Name: "n", Date: "2024-03-01", Category: "c"})

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Contains(t, err.Error(), "save task")
}
