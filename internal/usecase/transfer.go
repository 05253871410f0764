package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/tally/internal/domain"
)

// Format is a serialization format for export and import.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q (want json or yaml)", domain.ErrUnknownFormat, s)
}

// FormatFromPath guesses the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return FormatJSON
}

// ExportTasksInput contains the parameters for exporting the list.
type ExportTasksInput struct {
	Format Format
}

// ExportTasksOutput contains the serialized list.
type ExportTasksOutput struct {
	Data  []byte
	Count int
}

// ExportTasks is the use case for dumping the task list.
type ExportTasks struct {
	tasks domain.TaskRepository
}

// NewExportTasks creates a new ExportTasks use case.
func NewExportTasks(tasks domain.TaskRepository) *ExportTasks {
	return &ExportTasks{tasks: tasks}
}

// Execute serializes every task in list order.
func (uc *ExportTasks) Execute(ctx context.Context, in ExportTasksInput) (*ExportTasksOutput, error) {
	tasks, err := uc.tasks.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	var data []byte
	switch in.Format {
	case FormatJSON, "":
		data, err = json.MarshalIndent(tasks, "", "  ")
		data = append(data, '\n')
	case FormatYAML:
		data, err = yaml.Marshal(tasks)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, in.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}

	return &ExportTasksOutput{Data: data, Count: len(tasks)}, nil
}

// ImportTasksInput contains the parameters for loading tasks from a dump.
type ImportTasksInput struct {
	Format  Format
	Data    []byte
	Replace bool // Replace the list instead of appending
}

// ImportTasksOutput contains the result of an import.
type ImportTasksOutput struct {
	Imported int
	Total    int // List size after the import
}

// ImportTasks is the use case for loading tasks from a JSON or YAML dump.
type ImportTasks struct {
	tasks  domain.TaskRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewImportTasks creates a new ImportTasks use case.
func NewImportTasks(tasks domain.TaskRepository, clock domain.Clock, logger domain.Logger) *ImportTasks {
	return &ImportTasks{tasks: tasks, clock: clock, logger: logger}
}

// Execute validates every record before touching the list.
// Records without an id, or whose id is already taken, get a fresh one.
func (uc *ImportTasks) Execute(ctx context.Context, in ImportTasksInput) (*ImportTasksOutput, error) {
	records, err := decodeTasks(in.Format, in.Data)
	if err != nil {
		return nil, err
	}

	incoming := make([]*domain.Task, 0, len(records))
	for i, r := range records {
		if r == nil {
			continue
		}
		fields, err := resolveFields(r.Name, r.Date, r.Category, uc.clock)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		if r.TimeSpent < 0 {
			return nil, fmt.Errorf("record %d: %w", i+1, domain.ErrNegativeTime)
		}
		t := &domain.Task{ID: r.ID, TimeSpent: r.TimeSpent, Done: r.Done}
		if err := t.Apply(fields); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		incoming = append(incoming, t)
	}

	var total int
	err = uc.tasks.Update(ctx, func(tasks []*domain.Task) ([]*domain.Task, error) {
		if in.Replace {
			tasks = tasks[:0]
		}
		taken := make(map[domain.TaskID]bool, len(tasks)+len(incoming))
		for _, t := range tasks {
			taken[t.ID] = true
		}
		for _, t := range incoming {
			if t.ID == "" || taken[t.ID] {
				t.ID = domain.NewTaskID()
			}
			taken[t.ID] = true
			tasks = append(tasks, t)
		}
		total = len(tasks)
		return tasks, nil
	})
	if err != nil {
		return nil, fmt.Errorf("save tasks: %w", err)
	}

	uc.logger.Info("", "import", fmt.Sprintf("imported %d tasks (replace=%v)", len(incoming), in.Replace))
	return &ImportTasksOutput{Imported: len(incoming), Total: total}, nil
}

func decodeTasks(format Format, data []byte) ([]*domain.Task, error) {
	var records []*domain.Task
	switch format {
	case FormatJSON, "":
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, nil
		}
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("%w: decode json: %w", domain.ErrValidation, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("%w: decode yaml: %w", domain.ErrValidation, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
	}
	return records, nil
}
