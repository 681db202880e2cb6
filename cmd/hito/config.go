package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Version information, set at build time with -ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newConfigCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the settings after defaults, files and environment are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			storePath, err := c.settings.StorePath()
			if err != nil {
				return NewConfigError("show settings", err)
			}
			shown := *c.settings
			shown.Store = storePath

			if c.output.format != formatTable {
				return c.output.render(shown, nil)
			}
			// Settings are nested, so the table format prints YAML
			out, err := yaml.Marshal(shown)
			if err != nil {
				return WrapError("show settings", err)
			}
			if used := c.v.ConfigFileUsed(); used != "" {
				_, _ = fmt.Fprintf(c.output.out, "# %s\n", used)
			}
			_, err = c.output.out.Write(out)
			return err
		},
	})
	return cmd
}

func newVersionCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := map[string]string{"version": version, "commit": commit, "date": date}
			return c.output.message(info, "hito %s (commit %s, built %s)", version, commit, date)
		},
	}
}
