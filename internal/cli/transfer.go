package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/runoshun/tally/internal/app"
	"github.com/runoshun/tally/internal/usecase"
)

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format string
		Output string
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the task list as JSON or YAML",
		Long: `Write the task list as JSON or YAML.

Examples:
  tally export > tasks.json
  tally export --format yaml --output tasks.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := usecase.FormatFromPath(opts.Output)
			if cmd.Flags().Changed("format") || opts.Output == "" {
				f, err := usecase.ParseFormat(opts.Format)
				if err != nil {
					return err
				}
				format = f
			}

			out, err := c.ExportTasksUseCase().Execute(cmd.Context(), usecase.ExportTasksInput{Format: format})
			if err != nil {
				return err
			}

			if opts.Output == "" {
				_, err = cmd.OutOrStdout().Write(out.Data)
				return err
			}
			if err := os.WriteFile(opts.Output, out.Data, 0o600); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", out.Count, opts.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", string(usecase.FormatJSON), "Output format (json or yaml)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}

// newImportCommand creates the import command.
func newImportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format  string
		Replace bool
	}

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load tasks from a JSON or YAML file",
		Long: `Load tasks from a JSON or YAML file ("-" reads stdin).

Imported tasks are appended to the list unless --replace is given.
Every record is validated before anything is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var (
				data []byte
				err  error
			)
			if path == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(path)
			}
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}

			format := usecase.FormatFromPath(path)
			if opts.Format != "" {
				if format, err = usecase.ParseFormat(opts.Format); err != nil {
					return err
				}
			}

			out, err := c.ImportTasksUseCase().Execute(cmd.Context(), usecase.ImportTasksInput{
				Format:  format,
				Data:    data,
				Replace: opts.Replace,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks (%d total)\n", out.Imported, out.Total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Input format (json or yaml; default from file extension)")
	cmd.Flags().BoolVar(&opts.Replace, "replace", false, "Replace the task list instead of appending")

	return cmd
}
