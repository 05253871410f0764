package cli

import (
	"context"
	"fmt"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/spf13/cobra"

	"github.com/runoshun/tally/internal/app"
	"github.com/runoshun/tally/internal/httpapi"
)

const shutdownTimeout = 10 * time.Second

// newServeCommand creates the serve command.
func newServeCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the task list and timers over HTTP under /api/v1.

Timers started through the API run in the server process and are
stopped and written to the store on shutdown (SIGINT or SIGTERM).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.AppConfig.Server.Addr
			}

			srv := httpapi.New(c, httpapi.Options{AccessLog: cmd.ErrOrStderr()})

			listenErr := make(chan error, 1)
			go func() {
				listenErr <- srv.Listen(addr)
			}()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s (Ctrl+C to stop)\n", addr)

			wait := gfshutdown.GracefulShutdown(
				context.Background(),
				shutdownTimeout,
				map[string]gfshutdown.Operation{
					"http": func(ctx context.Context) error {
						return srv.Shutdown(ctx)
					},
				},
			)

			select {
			case err := <-listenErr:
				if err != nil {
					return fmt.Errorf("listen on %s: %w", addr, err)
				}
				return nil
			case code := <-wait:
				if code != 0 {
					return fmt.Errorf("shutdown finished with exit code %d", code)
				}
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")

	return cmd
}
