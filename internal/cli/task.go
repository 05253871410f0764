package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/tally/internal/app"
	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/usecase"
)

// newAddCommand creates the add command for creating tasks.
func newAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Name     string
		Date     string
		Category string
	}

	cmd := &cobra.Command{
		Use:   "add [NAME]",
		Short: "Add a new task",
		Long: `Add a new task to the end of the list.

The name can be given as an argument or with --name.
The date accepts YYYY-MM-DD, YYYY/MM/DD, an RFC 3339 timestamp,
or one of today, yesterday and tomorrow.

Examples:
  # Add a task for today
  tally add "Write report" --category work

  # Add a task for a specific day
  tally add --name "Dentist" --date 2024-03-15 --category health`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if opts.Name != "" {
					return errors.New("name given both as argument and --name")
				}
				opts.Name = args[0]
			}

			out, err := c.AddTaskUseCase().Execute(cmd.Context(), usecase.AddTaskInput{
				Name:     opts.Name,
				Date:     opts.Date,
				Category: opts.Category,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added task #%d %s: %s\n", out.Position, out.Task.ID.Short(), out.Task.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "Task name")
	cmd.Flags().StringVarP(&opts.Date, "date", "d", "today", "Task date")
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "Task category (required)")

	return cmd
}

// newEditCommand creates the edit command for updating task fields.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Name     string
		Date     string
		Category string
	}

	cmd := &cobra.Command{
		Use:   "edit REF",
		Short: "Edit a task",
		Long: `Change the name, date or category of a task.
Only the given flags are changed; done and time spent are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.UpdateTaskInput{Ref: args[0]}
			if cmd.Flags().Changed("name") {
				in.Name = &opts.Name
			}
			if cmd.Flags().Changed("date") {
				in.Date = &opts.Date
			}
			if cmd.Flags().Changed("category") {
				in.Category = &opts.Category
			}
			if in.Name == nil && in.Date == nil && in.Category == nil {
				return errors.New("nothing to change: use --name, --date or --category")
			}

			out, err := c.UpdateTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s: %s (%s, %s)\n",
				out.Task.ID.Short(), out.Task.Name, out.Task.Date, out.Task.Category)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "New name")
	cmd.Flags().StringVarP(&opts.Date, "date", "d", "", "New date")
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "New category")

	return cmd
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Date    string
		Month   string
		Search  string
		Done    bool
		Pending bool
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `Display the task list.

Output is tab-separated with columns:
  #, ID, DATE, CATEGORY, STATUS, TIME, NAME

# is the position used as a task reference by other commands.

Examples:
  # Everything
  tally list

  # Pending tasks for today
  tally list --date today --pending

  # Tasks in March mentioning "report"
  tally list --month 2024-03 --search report`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Done && opts.Pending {
				return errors.New("--done and --pending cannot be used together")
			}

			in := usecase.ListTasksInput{
				Date:   opts.Date,
				Month:  opts.Month,
				Search: opts.Search,
			}
			if opts.Done || opts.Pending {
				done := opts.Done
				in.Done = &done
			}

			out, err := c.ListTasksUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			printTaskList(cmd.OutOrStdout(), out.Tasks)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Date, "date", "d", "", "Only tasks on this day")
	cmd.Flags().StringVarP(&opts.Month, "month", "m", "", "Only tasks in this month (YYYY-MM)")
	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "Only tasks whose name or category contains this text")
	cmd.Flags().BoolVar(&opts.Done, "done", false, "Only completed tasks")
	cmd.Flags().BoolVar(&opts.Pending, "pending", false, "Only pending tasks")

	return cmd
}

// printTaskList prints tasks in a tab-separated table.
func printTaskList(w io.Writer, tasks []usecase.ListedTask) {
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(w, "No tasks found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "#\tID\tDATE\tCATEGORY\tSTATUS\tTIME\tNAME")
	for _, lt := range tasks {
		t := lt.Task
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			lt.Position,
			t.ID.Short(),
			t.Date,
			t.Category,
			t.Status(),
			domain.FormatDuration(t.TimeSpent),
			t.Name,
		)
	}
	_ = tw.Flush()
}

// newToggleCommand creates the toggle command.
func newToggleCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle REF",
		Short: "Flip a task between pending and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ToggleDoneUseCase().Execute(cmd.Context(), usecase.ToggleDoneInput{Ref: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s\n", out.Task.ID.Short(), out.Task.Status())
			return nil
		},
	}
}

// newDoneCommand creates the done command.
func newDoneCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "done REF",
		Short: "Mark a task as completed",
		Long:  `Mark a task as completed. A task that is already completed is left unchanged.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.CompleteTaskUseCase().Execute(cmd.Context(), usecase.CompleteTaskInput{Ref: args[0]})
			if err != nil {
				return err
			}
			if !out.Changed {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s was already completed\n", out.Task.ID.Short())
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Completed task %s: %s\n", out.Task.ID.Short(), out.Task.Name)
			return nil
		},
	}
}

// newRmCommand creates the rm command.
func newRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "rm REF",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Long:    `Delete a task and discard its timer. Positions of later tasks shift down by one.`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{Ref: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s: %s\n", out.Task.ID.Short(), out.Task.Name)
			return nil
		},
	}
}
