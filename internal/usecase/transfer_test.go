package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/testutil"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "YAML": FormatYAML, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("csv")
	assert.ErrorIs(t, err, domain.ErrUnknownFormat)

	assert.Equal(t, FormatYAML, FormatFromPath("backup.yml"))
	assert.Equal(t, FormatJSON, FormatFromPath("backup.txt"))
}

func TestExportImport_RoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			src := testutil.NewMockTaskRepository(seedTasks()...)
			exp, err := NewExportTasks(src).Execute(context.Background(), ExportTasksInput{Format: format})
			require.NoError(t, err)
			assert.Equal(t, 3, exp.Count)

			dst := testutil.NewMockTaskRepository()
			imp, err := NewImportTasks(dst, newClock(), domain.NopLogger{}).Execute(context.Background(), ImportTasksInput{
				Format: format,
				Data:   exp.Data,
			})
			require.NoError(t, err)
			assert.Equal(t, 3, imp.Imported)
			assert.Equal(t, seedTasks(), dst.Snapshot())
		})
	}
}

func TestExportTasks_JSONLayout(t *testing.T) {
	repo := testutil.NewMockTaskRepository(seedTasks()[0])

	out, err := NewExportTasks(repo).Execute(context.Background(), ExportTasksInput{Format: FormatJSON})

	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"11111111-aaaa-4000-8000-000000000001","taskName":"Write report","taskDate":"2024-03-01","taskCategory":"work","timeSpent":125,"done":true}]`, string(out.Data))
}

func TestImportTasks_AppendAssignsFreshIDs(t *testing.T) {
	repo := testutil.NewMockTaskRepository(seedTasks()...)
	uc := NewImportTasks(repo, newClock(), domain.NopLogger{})

	data := []byte(`
- id: 11111111-aaaa-4000-8000-000000000001
  name: Duplicate id
  date: today
  category: misc
- name: No id
  date: 2024-05-01
  category: misc
  timeSpent: 90
  done: true
`)
	out, err := uc.Execute(context.Background(), ImportTasksInput{Format: FormatYAML, Data: data})

	require.NoError(t, err)
	assert.Equal(t, 2, out.Imported)
	assert.Equal(t, 5, out.Total)

	stored := repo.Snapshot()
	seen := map[domain.TaskID]bool{}
	for _, task := range stored {
		assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
	}
	assert.Equal(t, "2024-03-01", stored[3].Date)
	assert.Equal(t, 90, stored[4].TimeSpent)
	assert.True(t, stored[4].Done)
}

func TestImportTasks_Replace(t *testing.T) {
	repo := testutil.NewMockTaskRepository(seedTasks()...)
	uc := NewImportTasks(repo, newClock(), domain.NopLogger{})

	out, err := uc.Execute(context.Background(), ImportTasksInput{
		Format:  FormatJSON,
		Data:    []byte(`[{"taskName":"Only","taskDate":"2024-03-01","taskCategory":"c"}]`),
		Replace: true,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
	stored := repo.Snapshot()
	require.Len(t, stored, 1)
	assert.Equal(t, "Only", stored[0].Name)
	assert.NotEmpty(t, stored[0].ID)
}

func TestImportTasks_InvalidRecordSavesNothing(t *testing.T) {
	repo := testutil.NewMockTaskRepository(seedTasks()...)
	uc := NewImportTasks(repo, newClock(), domain.NopLogger{})

	_, err := uc.Execute(context.Background(), ImportTasksInput{
		Format: FormatJSON,
		Data:   []byte(`[{"taskName":"ok","taskDate":"2024-03-01","taskCategory":"c"},{"taskName":"","taskDate":"2024-03-01","taskCategory":"c"}]`),
	})

	assert.ErrorIs(t, err, domain.ErrEmptyName)
	assert.Contains(t, err.Error(), "record 2")
	assert.Zero(t, repo.SaveCalls)
}

func TestImportTasks_BadInput(t *testing.T) {
	uc := NewImportTasks(testutil.NewMockTaskRepository(), newClock(), domain.NopLogger{})
	ctx := context.Background()

	_, err := uc.Execute(ctx, ImportTasksInput{Format: FormatJSON, Data: []byte(`{`)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(ctx, ImportTasksInput{Format: "xml", Data: []byte(`<a/>`)})
	assert.ErrorIs(t, err, domain.ErrUnknownFormat)

	_, err = uc.Execute(ctx, ImportTasksInput{Format: FormatJSON, Data: []byte(`[{"taskName":"n","taskDate":"2024-03-01","taskCategory":"c","timeSpent":-1}]`)})
	assert.ErrorIs(t, err, domain.ErrNegativeTime)
}
