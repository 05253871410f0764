// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/infra/config"
	"github.com/runoshun/tally/internal/infra/filestore"
	"github.com/runoshun/tally/internal/infra/jsonstore"
	"github.com/runoshun/tally/internal/infra/logging"
	"github.com/runoshun/tally/internal/infra/redisstore"
	"github.com/runoshun/tally/internal/infra/sqlitestore"
	"github.com/runoshun/tally/internal/infra/ticker"
	"github.com/runoshun/tally/internal/timer"
	"github.com/runoshun/tally/internal/usecase"
)

// Options selects configuration sources.
type Options struct {
	ConfigPath string // Explicit config file (--config); empty falls back to $TALLY_CONFIG
	DataDir    string // Overrides the default data directory
}

// Config holds the resolved application paths.
type Config struct {
	DataDir    string // Directory for logs and the file/sqlite store
	StorePath  string // Directory (file backend) or database file (sqlite backend)
	ConfigPath string // Explicit config file, if any
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tasks         domain.TaskRepository
	Slot          domain.Slot
	Clock         domain.Clock
	Ticker        domain.Ticker
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Logger        domain.Logger

	// Pointer fields
	AppConfig  *domain.Config
	timers     *timer.Registry
	timersOnce sync.Once

	closers []func() error

	// Configuration
	Config Config
	ready  bool
}

// NewContainer returns an empty container to be filled by Init.
func NewContainer() *Container {
	return &Container{}
}

// New creates and initializes a Container.
func New(opts Options) (*Container, error) {
	c := NewContainer()
	if err := c.Init(opts); err != nil {
		return nil, err
	}
	return c, nil
}

// Ready reports whether Init (or NewWithDeps) has run.
func (c *Container) Ready() bool {
	return c.ready
}

// Init loads configuration and sets up logging. The store is opened by OpenStore.
func (c *Container) Init(opts Options) error {
	loader := config.NewLoader(opts.ConfigPath)
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir, err = config.DefaultDataDir()
		if err != nil {
			return err
		}
	}

	logger := logging.New(dataDir, logging.ParseLevel(cfg.Log.Level))
	for _, w := range cfg.Warnings {
		logger.Warn("", "config", w)
	}

	c.AppConfig = cfg
	c.ConfigLoader = loader
	c.ConfigManager = config.NewManager()
	c.Clock = domain.RealClock{}
	c.Ticker = ticker.Real{}
	c.Logger = logger
	c.Config = Config{
		DataDir:    dataDir,
		StorePath:  storePath(cfg, dataDir),
		ConfigPath: loader.ExplicitPath(),
	}
	c.closers = append(c.closers, logger.Close)
	c.ready = true
	return nil
}

// NewWithDeps creates a ready Container with custom dependencies for testing.
func NewWithDeps(cfg *domain.Config, tasks domain.TaskRepository, clock domain.Clock, tick domain.Ticker, logger domain.Logger) *Container {
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Container{
		Tasks:     tasks,
		Clock:     clock,
		Ticker:    tick,
		Logger:    logger,
		AppConfig: cfg,
		ready:     true,
	}
}

// storePath resolves where the file and sqlite backends keep their data.
func storePath(cfg *domain.Config, dataDir string) string {
	if cfg.Store.Path != "" {
		return cfg.Store.Path
	}
	if cfg.Store.Backend == domain.BackendSQLite {
		return filepath.Join(dataDir, domain.SQLiteFileName)
	}
	return dataDir
}

// OpenStore connects the configured slot backend. It is a no-op once a store is set.
func (c *Container) OpenStore(ctx context.Context) error {
	if c.Tasks != nil {
		return nil
	}

	slot, closer, err := openSlot(ctx, c.AppConfig.Store, c.Config.StorePath)
	if err != nil {
		return err
	}
	if closer != nil {
		c.closers = append(c.closers, closer)
	}

	c.Slot = slot
	c.Tasks = jsonstore.New(slot, c.AppConfig.Store.Key, c.Logger)
	c.Logger.Debug("", "store", fmt.Sprintf("opened %s store", c.AppConfig.Store.Backend))
	return nil
}

func openSlot(ctx context.Context, cfg domain.StoreConfig, path string) (domain.Slot, func() error, error) {
	switch cfg.Backend {
	case domain.BackendFile, "":
		return filestore.New(path), nil, nil
	case domain.BackendSQLite:
		s, err := sqlitestore.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
		}
		return s, s.Close, nil
	case domain.BackendRedis:
		s, err := redisstore.Dial(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", domain.ErrUnknownBackend, cfg.Backend)
}

// Timers returns the process-wide timer registry, creating it on first use.
// Flushes go through SetTimeSpent on the container's store.
// Safe for concurrent use; every caller gets the same registry.
func (c *Container) Timers() *timer.Registry {
	c.timersOnce.Do(func() {
		c.timers = timer.NewRegistry(c.Ticker, c.SetTimeSpentUseCase(), c.Logger, c.AppConfig.Timer.Flush)
	})
	return c.timers
}

// Close releases the store and log files.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// UseCase factory methods

// AddTaskUseCase returns a new AddTask use case.
func (c *Container) AddTaskUseCase() *usecase.AddTask {
	return usecase.NewAddTask(c.Tasks, c.Clock, c.Logger)
}

// UpdateTaskUseCase returns a new UpdateTask use case.
func (c *Container) UpdateTaskUseCase() *usecase.UpdateTask {
	return usecase.NewUpdateTask(c.Tasks, c.Clock, c.Logger)
}

// ToggleDoneUseCase returns a new ToggleDone use case.
func (c *Container) ToggleDoneUseCase() *usecase.ToggleDone {
	return usecase.NewToggleDone(c.Tasks, c.Logger)
}

// CompleteTaskUseCase returns a new CompleteTask use case.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.Tasks, c.Logger)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Tasks, c.Timers(), c.Logger)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks, c.Clock)
}

// SetTimeSpentUseCase returns a new SetTimeSpent use case.
func (c *Container) SetTimeSpentUseCase() *usecase.SetTimeSpent {
	return usecase.NewSetTimeSpent(c.Tasks)
}

// TimerControlUseCase returns a new TimerControl use case.
func (c *Container) TimerControlUseCase() *usecase.TimerControl {
	return usecase.NewTimerControl(c.Tasks, c.Timers(), c.Logger)
}

// SummarizeUseCase returns a new Summarize use case.
func (c *Container) SummarizeUseCase() *usecase.Summarize {
	return usecase.NewSummarize(c.Tasks, c.Clock)
}

// ExportTasksUseCase returns a new ExportTasks use case.
func (c *Container) ExportTasksUseCase() *usecase.ExportTasks {
	return usecase.NewExportTasks(c.Tasks)
}

// ImportTasksUseCase returns a new ImportTasks use case.
func (c *Container) ImportTasksUseCase() *usecase.ImportTasks {
	return usecase.NewImportTasks(c.Tasks, c.Clock, c.Logger)
}
