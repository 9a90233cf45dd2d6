package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft/outlook"
)

// queryFlags are the collection query options shared by list commands.
type queryFlags struct {
	top    int
	skip   int
	sel    string
	expand string
	filter string
	cursor string
	all    bool
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&q.top, "top", 0, "maximum number of results")
	cmd.Flags().IntVar(&q.skip, "skip", 0, "number of results to skip")
	cmd.Flags().StringVar(&q.sel, "select", "", "comma-separated properties to return")
	cmd.Flags().StringVar(&q.expand, "expand", "", "navigation properties to expand")
	cmd.Flags().StringVar(&q.filter, "filter", "", "OData filter expression, e.g. \"IsRead eq false\"")
	cmd.Flags().StringVar(&q.cursor, "cursor", "", "resume from the cursor printed by a previous page")
	cmd.Flags().BoolVar(&q.all, "all", false, "walk every page (--top sets the page size)")
}

func applyQuery[T any](c *outlook.CollectionFetcher[T], q *queryFlags) error {
	if q.top > 0 {
		c.Top(q.top)
	}
	if q.skip > 0 {
		c.Skip(q.skip)
	}
	if q.sel != "" {
		c.Select(q.sel)
	}
	if q.expand != "" {
		c.Expand(q.expand)
	}
	if q.filter != "" {
		c.Filter(q.filter)
	}
	return c.ResumeFrom(q.cursor)
}

// listCollection runs the query and renders the result with columns.
// A continuation cursor, when the page was full, goes to stderr so that
// structured output stays parseable.
func listCollection[T any](
	cmd *cobra.Command,
	c *outlook.CollectionFetcher[T],
	q *queryFlags,
	headers []string,
	row func(T) []string,
) error {
	if err := applyQuery(c, q); err != nil {
		return err
	}
	ctx := cmd.Context()

	var (
		items  []T
		cursor string
	)
	if q.all {
		items = []T{}
		for item, err := range c.All(ctx, q.top) {
			if err != nil {
				return err
			}
			items = append(items, item)
		}
	} else {
		page, err := c.FetchPage(ctx)
		if err != nil {
			return err
		}
		items, cursor = page.Items, page.Cursor
	}

	t := table{headers: headers}
	for _, item := range items {
		t.rows = append(t.rows, row(item))
	}
	if err := render(cmd, items, t); err != nil {
		return err
	}
	if cursor != "" {
		cmd.PrintErrf("More results: --cursor %s\n", cursor)
	}
	return nil
}
