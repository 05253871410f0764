// Package cli provides the command-line interface for tally.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/tally/internal/app"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupTask  = "task"
	groupTime  = "time"
)

// annotationNoStore marks commands that run without opening the task store.
const annotationNoStore = "tally/no-store"

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for tally.
// It receives the container for dependency injection and version for display.
// A container that is not yet Ready is initialized from --config before any subcommand runs.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "tally",
		Short: "Daily task list with per-task timers",
		Long: `tally keeps a dated task list with categories, a stopwatch per task
and a summary of what was completed on each day.

Tasks are referenced by id, a unique id prefix, or their 1-based
position in the list (e.g. "3" or "#3").

Running tally without a subcommand opens the interactive TUI.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}

			if !c.Ready() {
				if err := c.Init(app.Options{ConfigPath: configPath}); err != nil {
					return err
				}
				for _, w := range c.AppConfig.Warnings {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
				}
			}

			if skipsStore(cmd) {
				return nil
			}
			return c.OpenStore(cmd.Context())
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			// Default: launch TUI
			return launchTUIFunc(c)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $TALLY_CONFIG)")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupTime, Title: "Time Tracking:"},
	)

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupSetup

	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupSetup

	importCmd := newImportCommand(c)
	importCmd.GroupID = groupSetup

	// Task management commands
	addCmd := newAddCommand(c)
	addCmd.GroupID = groupTask

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupTask

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	toggleCmd := newToggleCommand(c)
	toggleCmd.GroupID = groupTask

	doneCmd := newDoneCommand(c)
	doneCmd.GroupID = groupTask

	rmCmd := newRmCommand(c)
	rmCmd.GroupID = groupTask

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupTask

	// Time tracking commands
	timerCmd := newTimerCommand(c)
	timerCmd.GroupID = groupTime

	summaryCmd := newSummaryCommand(c)
	summaryCmd.GroupID = groupTime

	// Add subcommands
	root.AddCommand(
		configCmd,
		serveCmd,
		exportCmd,
		importCmd,
		addCmd,
		editCmd,
		listCmd,
		toggleCmd,
		doneCmd,
		rmCmd,
		tuiCmd,
		timerCmd,
		summaryCmd,
	)

	return root
}

// skipsStore reports whether cmd or one of its parents is annotated with annotationNoStore.
func skipsStore(cmd *cobra.Command) bool {
	for p := cmd; p != nil; p = p.Parent() {
		if _, ok := p.Annotations[annotationNoStore]; ok {
			return true
		}
	}
	return false
}
