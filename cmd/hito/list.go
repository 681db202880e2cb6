package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/iomz/hito/hito"
	"github.com/iomz/hito/hito/query"
	"github.com/iomz/hito/types"
	"github.com/spf13/cobra"
)

func newListCmd(c *cli) *cobra.Command {
	var (
		input     types.FilterInput
		sortKey   string
		direction string
		summary   bool
	)

	cmd := &cobra.Command{
		Use:   "list [directory]",
		Short: "List the images of a directory",
		Long: `List the images of a directory after filtering and sorting.

Sizes given to --size and --size2 are in KiB. Unrecognized operators and
non-numeric sizes are ignored rather than rejected.`,
		Example: `  hito list ~/Pictures --sort size --direction desc
  hito list . --category uncategorized
  hito list . --name IMG_ --name-op startsWith --size-op between --size 100 --size2 500`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				return WrapError("list images", err)
			}

			// Accept category names on the command line
			if input.Category != "" && input.Category != types.UncategorizedFilterValue {
				id, err := c.resolveCategory("list images", input.Category)
				if err != nil {
					return err
				}
				input.Category = id
			}

			filter := input.Spec()
			result, err := c.app.Browse(abs, &filter, types.ParseSortSpec(sortKey, direction))
			if err != nil {
				return WrapError("list images", err)
			}

			if summary {
				return c.printSummary(result.Summary)
			}
			return c.printImages(result)
		},
	}

	cmd.Flags().StringVarP(&input.Category, "category", "c", "", "category id or name, or 'uncategorized'")
	cmd.Flags().StringVarP(&input.NamePattern, "name", "n", "", "file name pattern (case-insensitive)")
	cmd.Flags().StringVar(&input.NameOperator, "name-op", "contains", "name operator (contains, startsWith, endsWith, exact)")
	cmd.Flags().StringVar(&input.SizeOperator, "size-op", "", "size operator (largerThan, lessThan, between)")
	cmd.Flags().StringVar(&input.SizeValue, "size", "", "size threshold in KiB")
	cmd.Flags().StringVar(&input.SizeValueUpper, "size2", "", "second threshold in KiB for between")
	cmd.Flags().StringVarP(&sortKey, "sort", "s", "name", "sort key (none, name, size, dateCreated, lastCategorized)")
	cmd.Flags().StringVarP(&direction, "direction", "d", "asc", "sort direction (asc, desc)")
	cmd.Flags().BoolVar(&summary, "summary", false, "only print per-category counts")

	return cmd
}

func (c *cli) printImages(result *hito.BrowseResult) error {
	names, err := c.categoryNames()
	if err != nil {
		return err
	}

	return c.output.render(result, func(t *tableWriter) {
		t.header("name", "size", "created", "categories")
		for _, img := range result.Images {
			size := "-"
			if img.Size != nil {
				size = humanize.IBytes(*img.Size)
			}
			created := "-"
			if ts, ok := types.ParseTimestamp(img.Created); ok {
				created = ts.Local().Format("2006-01-02 15:04")
			}

			var cats []string
			for _, a := range result.Assignments.For(img.Path) {
				cats = append(cats, names.label(a.CategoryID))
			}
			t.row(filepath.Base(img.Path), size, created, strings.Join(cats, ", "))
		}
	})
}

func (c *cli) printSummary(s query.Summary) error {
	names, err := c.categoryNames()
	if err != nil {
		return err
	}

	return c.output.render(s, func(t *tableWriter) {
		t.header("category", "images")
		t.row("all", fmt.Sprint(s.Total))
		t.row("categorized", fmt.Sprint(s.Categorized))
		t.row("uncategorized", fmt.Sprint(s.Uncategorized))
		for _, id := range names.order {
			if n := s.PerCategory[id]; n > 0 {
				t.row(names.label(id), fmt.Sprint(n))
			}
		}
	})
}

// categoryLabels maps category ids to display names in configured order
type categoryLabels struct {
	order []string
	names map[string]string
}

func (l categoryLabels) label(id string) string {
	if name, ok := l.names[id]; ok {
		return name
	}
	return id
}

func (c *cli) categoryNames() (categoryLabels, error) {
	categories, err := c.app.Store().Categories()
	if err != nil {
		return categoryLabels{}, WrapError("read categories", err, CommonSuggestions.CheckStore)
	}
	labels := categoryLabels{names: make(map[string]string, len(categories))}
	for _, cat := range categories {
		labels.order = append(labels.order, cat.ID)
		labels.names[cat.ID] = cat.Name
	}
	return labels, nil
}
