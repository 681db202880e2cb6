package main

import (
	"github.com/iomz/hito/hito"
	"github.com/iomz/hito/types"
	"github.com/spf13/cobra"
)

func newCategoriesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Manage categories",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List configured categories",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				categories, err := c.app.Store().Categories()
				if err != nil {
					return WrapError("list categories", err, CommonSuggestions.CheckStore)
				}
				return c.printCategories(categories)
			},
		},
		newCategoryAddCmd(c),
		newCategoryUpdateCmd(c),
		newCategoryRemoveCmd(c),
	)
	return cmd
}

func newCategoryAddCmd(c *cli) *cobra.Command {
	var category types.CategoryData

	cmd := &cobra.Command{
		Use:     "add <name>",
		Short:   "Add a category",
		Example: `  hito categories add Keep --color "#22aa44"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category.Name = args[0]
			added, err := c.app.Store().AddCategory(category)
			if err != nil {
				return WrapError("add category", err)
			}
			return c.printCategories([]types.CategoryData{added})
		},
	}

	cmd.Flags().StringVar(&category.Color, "color", "#888888", "display color (#RGB or #RRGGBB)")
	cmd.Flags().StringVar(&category.ID, "id", "", "category id (default: generated)")
	return cmd
}

func newCategoryUpdateCmd(c *cli) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "update <id|name>",
		Short: "Rename or recolor a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := c.resolveCategory("update category", args[0])
			if err != nil {
				return err
			}

			categories, err := c.app.Store().Categories()
			if err != nil {
				return WrapError("update category", err)
			}
			var category types.CategoryData
			for _, cat := range categories {
				if cat.ID == id {
					category = cat
				}
			}

			if cmd.Flags().Changed("name") {
				category.Name = name
			}
			if cmd.Flags().Changed("color") {
				category.Color = color
			}
			if err := c.app.Store().UpdateCategory(category); err != nil {
				return WrapError("update category", err)
			}
			return c.printCategories([]types.CategoryData{category})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&color, "color", "", "new color")
	return cmd
}

func newCategoryRemoveCmd(c *cli) *cobra.Command {
	var dirs []string

	cmd := &cobra.Command{
		Use:     "remove <id|name>",
		Aliases: []string{"rm"},
		Short:   "Remove a category",
		Long: `Remove a category from the config store. Assignments of the category are
also stripped from the sidecar files of the directories given with --dir.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := c.resolveCategory("remove category", args[0])
			if err != nil {
				return err
			}
			if err := c.app.RemoveCategory(id, dirs...); err != nil {
				return WrapError("remove category", err)
			}
			return c.output.message(map[string]string{"removed": id}, "Removed category %s", id)
		},
	}

	cmd.Flags().StringSliceVar(&dirs, "dir", nil, "directories whose assignments are cleaned up")
	return cmd
}

func (c *cli) printCategories(categories []types.CategoryData) error {
	return c.output.render(categories, func(t *tableWriter) {
		t.header("id", "name", "color")
		for _, cat := range categories {
			t.row(cat.ID, cat.Name, cat.Color)
		}
	})
}

func newAssignCmd(c *cli) *cobra.Command {
	var toggle bool

	cmd := &cobra.Command{
		Use:   "assign <image> <category>",
		Short: "Assign a category to an image",
		Long: `Assign a category, given by id or name, to an image. Assigning a category the
image already has refreshes its timestamp. With --toggle the category is
removed instead when present.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := absPath(args[0])
			if err != nil {
				return WrapError("assign category", err)
			}
			id, err := c.resolveCategory("assign category", args[1])
			if err != nil {
				return err
			}

			if toggle {
				assigned, err := c.app.Toggle(image, id)
				if err != nil {
					return WrapError("toggle category", err)
				}
				state := "removed from"
				if assigned {
					state = "assigned to"
				}
				return c.output.message(map[string]any{"image": image, "category_id": id, "assigned": assigned},
					"Category %s %s %s", args[1], state, image)
			}

			if err := c.app.Assign(image, id); err != nil {
				return WrapError("assign category", err)
			}
			return c.output.message(map[string]any{"image": image, "category_id": id, "assigned": true},
				"Category %s assigned to %s", args[1], image)
		},
	}

	cmd.Flags().BoolVarP(&toggle, "toggle", "t", false, "remove the category when already assigned")
	return cmd
}

func newUnassignCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <image> <category>",
		Short: "Remove a category from an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := absPath(args[0])
			if err != nil {
				return WrapError("unassign category", err)
			}
			id, err := c.resolveCategory("unassign category", args[1])
			if err != nil && !hito.IsNotFound(err) {
				return err
			}
			if id == "" {
				// Stale ids left in sidecars can still be removed
				id = args[1]
			}

			removed, err := c.app.Unassign(image, id)
			if err != nil {
				return WrapError("unassign category", err)
			}
			if !removed {
				return c.output.message(map[string]any{"image": image, "category_id": id, "removed": false},
					"%s did not have category %s", image, args[1])
			}
			return c.output.message(map[string]any{"image": image, "category_id": id, "removed": true},
				"Category %s removed from %s", args[1], image)
		},
	}
}
