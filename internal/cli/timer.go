package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/runoshun/tally/internal/app"
	"github.com/runoshun/tally/internal/timer"
	"github.com/runoshun/tally/internal/usecase"
)

// newTimerCommand creates the timer command.
func newTimerCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Track time on a task",
		Long: `Track time on a task.

Timers live in the running process. Use "timer run" for a foreground
stopwatch, or the TUI and "serve" for timers that keep running while
you work on other tasks.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newTimerRunCommand(c))
	cmd.AddCommand(newTimerResetCommand(c))
	cmd.AddCommand(newTimerShowCommand(c))

	return cmd
}

// newTimerRunCommand creates the timer run subcommand.
func newTimerRunCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "run REF",
		Short: "Run a stopwatch for a task until interrupted",
		Long: `Start the task's timer from its recorded time and show it until
Ctrl+C. The final time is written to the task when the timer stops.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out, err := c.TimerControlUseCase().Execute(ctx, usecase.TimerInput{
				Ref:    args[0],
				Action: usecase.TimerStart,
			})
			if err != nil {
				return err
			}

			w := &syncWriter{w: cmd.OutOrStdout()}
			id := out.Task.ID
			w.printf("Timing %s: %s (Ctrl+C to stop)\n", id.Short(), out.Task.Name)
			w.printf("\r%s", out.State.Display())

			cancelDisplay := c.Ticker.Every(timer.TickInterval, func() {
				w.printf("\r%s", c.Timers().Snapshot(id).Display())
			})
			<-ctx.Done()
			cancelDisplay()

			// The command context is already cancelled; the final flush must still happen.
			st, err := c.Timers().Stop(context.WithoutCancel(ctx), id)
			if err != nil {
				return err
			}
			w.printf("\nStopped at %s\n", st.Display())
			return nil
		},
	}
}

// newTimerResetCommand creates the timer reset subcommand.
func newTimerResetCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "reset REF",
		Short: "Set a task's recorded time to zero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.TimerControlUseCase().Execute(cmd.Context(), usecase.TimerInput{
				Ref:    args[0],
				Action: usecase.TimerReset,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reset timer of task %s\n", out.Task.ID.Short())
			return nil
		},
	}
}

// newTimerShowCommand creates the timer show subcommand.
func newTimerShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show REF",
		Short: "Print a task's recorded time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.TimerControlUseCase().Execute(cmd.Context(), usecase.TimerInput{
				Ref:    args[0],
				Action: usecase.TimerShow,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", out.State.Display(), out.Task.Name)
			return nil
		},
	}
}

// syncWriter serializes writes from the display ticker and the command goroutine.
type syncWriter struct {
	w  io.Writer
	mu sync.Mutex
}

func (s *syncWriter) printf(format string, a ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.w, format, a...)
}
