package shared

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/testutil"
)

func refTasks() []*domain.Task {
	return []*domain.Task{
		testutil.NewTask("ab12cd34-0000-4000-8000-000000000001", "one", "2024-03-01"),
		testutil.NewTask("ab99ff00-0000-4000-8000-000000000002", "two", "2024-03-01"),
		testutil.NewTask("12345678-0000-4000-8000-000000000003", "three", "2024-03-01"),
	}
}

func TestResolveRef(t *testing.T) {
	tasks := refTasks()

	tests := []struct {
		name    string
		ref     string
		want    int
		wantErr error
	}{
		{"full id", "ab99ff00-0000-4000-8000-000000000002", 1, nil},
		{"unique prefix", "ab12", 0, nil},
		{"hash position", "#2", 1, nil},
		{"bare position", "3", 2, nil},
		{"padded", "  1 ", 0, nil},
		{"digit prefix", "1234", 2, nil},
		{"long digits without match fall back to position", "0002", 1, nil},
		{"ambiguous prefix", "ab", -1, domain.ErrAmbiguousRef},
		{"unknown prefix", "zz", -1, domain.ErrTaskNotFound},
		{"position zero", "0", -1, domain.ErrIndexOutOfRange},
		{"position past end", "#4", -1, domain.ErrIndexOutOfRange},
		{"bad hash", "#x", -1, domain.ErrTaskNotFound},
		{"empty", " ", -1, domain.ErrTaskNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveRef(tasks, tt.ref)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveRef_EmptyList(t *testing.T) {
	_, err := ResolveRef(nil, "1")
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	assert.True(t, domain.IsRecoverable(err))
}

func TestFindByID(t *testing.T) {
	tasks := refTasks()

	idx, err := FindByID(tasks, tasks[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	_, err = FindByID(tasks, "ab12")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestMutateTask(t *testing.T) {
	repo := testutil.NewMockTaskRepository(refTasks()...)

	out, err := MutateTask(context.Background(), repo, "#1", func(task *domain.Task) error {
		task.Done = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, out.Done)
	assert.True(t, repo.Snapshot()[0].Done)
	assert.Equal(t, 1, repo.SaveCalls)
}

func TestMutateTask_ErrorSavesNothing(t *testing.T) {
	repo := testutil.NewMockTaskRepository(refTasks()...)
	boom := errors.New("boom")

	_, err := MutateTask(context.Background(), repo, "#1", func(task *domain.Task) error {
		task.Done = true
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, repo.Snapshot()[0].Done)
	assert.Equal(t, 0, repo.SaveCalls)

	_, err = MutateTask(context.Background(), repo, "#9", func(*domain.Task) error { return nil })
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}

func TestGetTask_ReturnsCopy(t *testing.T) {
	repo := testutil.NewMockTaskRepository(refTasks()...)

	task, err := GetTask(context.Background(), repo, "two")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Nil(t, task)

	task, err = GetTask(context.Background(), repo, "ab99")
	require.NoError(t, err)
	task.Name = "changed"
	assert.Equal(t, "two", repo.Snapshot()[1].Name)
}
