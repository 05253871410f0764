package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/testutil"
)

func TestSetTimeSpent(t *testing.T) {
	tasks := seedTasks()
	repo := testutil.NewMockTaskRepository(tasks...)
	uc := NewSetTimeSpent(repo)
	ctx := context.Background()

	require.NoError(t, uc.SetTimeSpent(ctx, tasks[1].ID, 42))
	assert.Equal(t, 42, repo.Find(tasks[1].ID).TimeSpent)

	require.NoError(t, uc.SetTimeSpent(ctx, tasks[1].ID, 0))
	assert.Equal(t, 0, repo.Find(tasks[1].ID).TimeSpent)
}

func TestSetTimeSpent_Errors(t *testing.T) {
	repo := testutil.NewMockTaskRepository(seedTasks()...)
	uc := NewSetTimeSpent(repo)
	ctx := context.Background()

	assert.ErrorIs(t, uc.SetTimeSpent(ctx, "missing", 5), domain.ErrTaskNotFound)
	assert.ErrorIs(t, uc.SetTimeSpent(ctx, seedTasks()[0].ID, -1), domain.ErrValidation)
	assert.Zero(t, repo.SaveCalls)
}
