package main

import (
	"sort"

	"github.com/spf13/cobra"
)

func newDirPathCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dirpath",
		Short: "Manage custom sidecar locations",
		Long: `By default the assignments of a directory are kept in a sidecar file inside
it. A custom location moves them elsewhere, for example for read-only media.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all custom locations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				paths, err := c.app.Store().DirectoryPaths()
				if err != nil {
					return WrapError("list directory paths", err, CommonSuggestions.CheckStore)
				}
				dirs := make([]string, 0, len(paths))
				for dir := range paths {
					dirs = append(dirs, dir)
				}
				sort.Strings(dirs)

				return c.output.render(paths, func(t *tableWriter) {
					t.header("directory", "path")
					for _, dir := range dirs {
						t.row(dir, paths[dir])
					}
				})
			},
		},
		&cobra.Command{
			Use:   "get <directory>",
			Short: "Show where the assignments of a directory are kept",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := absPath(args[0])
				if err != nil {
					return WrapError("get directory path", err)
				}
				custom, found, err := c.app.Store().GetDirectoryPath(dir)
				if err != nil {
					return WrapError("get directory path", err)
				}
				effective, err := c.app.SidecarPath(dir)
				if err != nil {
					return WrapError("get directory path", err)
				}

				data := map[string]any{"directory": dir, "path": custom, "found": found, "effective": effective}
				return c.output.render(data, func(t *tableWriter) {
					t.header("directory", "custom", "effective")
					if !found {
						custom = "-"
					}
					t.row(dir, custom, effective)
				})
			},
		},
		&cobra.Command{
			Use:   "set <directory> <path>",
			Short: "Keep the assignments of a directory at path",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := absPath(args[0])
				if err != nil {
					return WrapError("set directory path", err)
				}
				path, err := absPath(args[1])
				if err != nil {
					return WrapError("set directory path", err)
				}
				if err := c.app.Store().SetDirectoryPath(dir, path); err != nil {
					return WrapError("set directory path", err)
				}
				return c.output.message(map[string]string{"directory": dir, "path": path},
					"Assignments of %s are kept in %s", dir, path)
			},
		},
		&cobra.Command{
			Use:   "clear <directory>",
			Short: "Return a directory to the default sidecar location",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := absPath(args[0])
				if err != nil {
					return WrapError("clear directory path", err)
				}
				if err := c.app.Store().RemoveDirectoryPath(dir); err != nil {
					return WrapError("clear directory path", err)
				}
				return c.output.message(map[string]string{"directory": dir}, "Cleared custom location of %s", dir)
			},
		},
	)
	return cmd
}
