package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/tally/internal/app"
	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/infra/config"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage configuration",
		Long:        `Manage tally configuration files and settings.`,
		Annotations: map[string]string{annotationNoStore: ""},
		// No RunE: shows subcommand list when called without arguments
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Shows which config files were loaded and the final merged configuration.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()

			// Display loaded files section
			_, _ = fmt.Fprintln(w, "[Loaded from]")
			global := c.ConfigManager.GlobalConfigInfo()
			switch {
			case global.Path == "":
				_, _ = fmt.Fprintln(w, "- (no global config directory)")
			case global.Exists:
				_, _ = fmt.Fprintf(w, "- %s\n", global.Path)
			default:
				_, _ = fmt.Fprintf(w, "- %s (not found)\n", global.Path)
			}
			if c.Config.ConfigPath != "" {
				_, _ = fmt.Fprintf(w, "- %s\n", c.Config.ConfigPath)
			}
			_, _ = fmt.Fprintln(w)

			_, _ = fmt.Fprintln(w, "[Data directory]")
			_, _ = fmt.Fprintf(w, "- %s\n\n", c.Config.DataDir)

			// Display effective config in TOML format
			_, _ = fmt.Fprintln(w, "[Effective Config]")
			data, err := config.Marshal(c.AppConfig)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, _ = w.Write(data)
			return nil
		},
	}
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented config file",
		Long: `Write a commented config file with the default settings to
$XDG_CONFIG_HOME/tally/config.toml (usually ~/.config/tally/config.toml).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := c.ConfigManager.InitGlobalConfig(force)
			if errors.Is(err, domain.ErrConfigExists) {
				return fmt.Errorf("%w: %s (use --force to overwrite)", err, path)
			}
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	return cmd
}
