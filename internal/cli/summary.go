package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/runoshun/tally/internal/app"
	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/usecase"
)

// newSummaryCommand creates the summary command.
func newSummaryCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "summary [DATE]",
		Short: "Show the tasks completed on a day",
		Long: `Show the tasks completed on a day with their total tracked time.

DATE defaults to today and accepts the same forms as "add --date".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in usecase.SummarizeInput
			if len(args) == 1 {
				in.Date = args[0]
			}

			out, err := c.SummarizeUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), out.Summary)
			return nil
		},
	}
}

func printSummary(w io.Writer, s *domain.DailySummary) {
	_, _ = fmt.Fprintf(w, "Summary for %s\n", s.Date)
	if s.Empty() {
		_, _ = fmt.Fprintln(w, domain.EmptySummaryNotice)
		return
	}

	_, _ = fmt.Fprintf(w, "Completed: %d  Total time: %s\n", s.CompletedCount, domain.FormatDuration(s.TotalTimeSpent))
	for _, t := range s.Tasks {
		_, _ = fmt.Fprintf(w, "  %s  %s [%s]\n", domain.FormatDuration(t.TimeSpent), t.Name, t.Category)
	}
}
