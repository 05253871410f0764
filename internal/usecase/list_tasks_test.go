package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/testutil"
)

func names(items []ListedTask) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Task.Name
	}
	return out
}

func TestListTasks_Execute(t *testing.T) {
	done := true
	pending := false

	tests := []struct {
		name      string
		in        ListTasksInput
		want      []string
		positions []int
	}{
		{"all", ListTasksInput{}, []string{"Write report", "Buy milk", "Plan trip"}, []int{1, 2, 3}},
		{"done", ListTasksInput{Done: &done}, []string{"Write report", "Plan trip"}, []int{1, 3}},
		{"pending", ListTasksInput{Done: &pending}, []string{"Buy milk"}, []int{2}},
		{"today", ListTasksInput{Date: "today"}, []string{"Write report", "Buy milk"}, []int{1, 2}},
		{"month", ListTasksInput{Month: "2024-04"}, []string{"Plan trip"}, []int{3}},
		{"search", ListTasksInput{Search: "HOME"}, []string{"Buy milk", "Plan trip"}, []int{2, 3}},
		{"combined", ListTasksInput{Search: "home", Done: &done}, []string{"Plan trip"}, []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockTaskRepository(seedTasks()...)
			uc := NewListTasks(repo, newClock())

			out, err := uc.Execute(context.Background(), tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.want, names(out.Tasks))
			for i, it := range out.Tasks {
				assert.Equal(t, tt.positions[i], it.Position)
			}
			assert.Equal(t, 3, out.Total)
		})
	}
}

func TestListTasks_Execute_Empty(t *testing.T) {
	uc := NewListTasks(testutil.NewMockTaskRepository(), newClock())

	out, err := uc.Execute(context.Background(), ListTasksInput{})

	require.NoError(t, err)
	assert.NotNil(t, out.Tasks)
	assert.Empty(t, out.Tasks)
}

func TestListTasks_Execute_InvalidFilters(t *testing.T) {
	uc := NewListTasks(testutil.NewMockTaskRepository(), newClock())

	_, err := uc.Execute(context.Background(), ListTasksInput{Date: "someday"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = uc.Execute(context.Background(), ListTasksInput{Month: "2024-13"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestListTasks_Execute_LoadError(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.LoadErr = domain.ErrStorage
	uc := NewListTasks(repo, newClock())

	_, err := uc.Execute(context.Background(), ListTasksInput{})

	assert.ErrorIs(t, err, domain.ErrStorage)
}
