package main

import (
	"fmt"
	"path/filepath"

	"github.com/iomz/hito/hito/fileops"
	"github.com/spf13/cobra"
)

func newImageCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "image",
		Aliases: []string{"img"},
		Short:   "Load, trash, copy or move single images",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "load <image>",
			Short: "Print an image as a data URL",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				url, err := c.app.LoadImage(args[0])
				if err != nil {
					return WrapError("load image", err)
				}
				if c.output.format == formatTable {
					_, err = fmt.Fprintln(c.output.out, url)
					return err
				}
				return c.output.render(map[string]string{"path": args[0], "data_url": url}, nil)
			},
		},
		&cobra.Command{
			Use:   "parent <path>",
			Short: "Print the directory containing path",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				parent, err := fileops.ParentDirectory(args[0])
				if err != nil {
					return WrapError("resolve parent directory", err)
				}
				return c.output.message(map[string]string{"path": args[0], "parent": parent}, "%s", parent)
			},
		},
		&cobra.Command{
			Use:   "trash <image>",
			Short: "Move an image to the trash and forget its categories",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				image, err := absPath(args[0])
				if err != nil {
					return WrapError("trash image", err)
				}
				trashed, err := c.app.TrashImage(image)
				if err != nil {
					return WrapError("trash image", err)
				}
				return c.output.message(map[string]string{"path": image, "trash": trashed}, "Moved %s to %s", image, trashed)
			},
		},
		newTransferCmd(c, "copy", "Copy an image into a directory, keeping its categories", c.copyImage),
		newTransferCmd(c, "move", "Move an image into a directory, keeping its categories", c.moveImage),
	)
	return cmd
}

// newTransferCmd builds the copy and move commands, which differ only in the operation
func newTransferCmd(c *cli, name, short string, run func(image, dir string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <image> <directory>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := absPath(args[0])
			if err != nil {
				return WrapError(name+" image", err)
			}
			dir, err := absPath(args[1])
			if err != nil {
				return WrapError(name+" image", err)
			}
			dst, err := run(image, dir)
			if err != nil {
				return WrapError(name+" image", err)
			}
			return c.output.message(map[string]string{"path": image, "destination": dst}, "%s -> %s", image, dst)
		},
	}
}

// c.app is only set in setup, so the operations are bound late
func (c *cli) copyImage(image, dir string) (string, error) { return c.app.CopyImage(image, dir) }
func (c *cli) moveImage(image, dir string) (string, error) { return c.app.MoveImage(image, dir) }

func absPath(path string) (string, error) {
	return filepath.Abs(path)
}
