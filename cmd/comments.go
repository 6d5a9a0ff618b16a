package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"hn-reader/internal/comments"
	"hn-reader/internal/hackernews"
	"hn-reader/internal/model"

	"github.com/spf13/cobra"
)

var (
	commentsRefresh  bool
	commentsCollapse bool
)

var commentsCmd = &cobra.Command{
	Use:   "comments <item-id>",
	Short: "Show the comment tree for a story",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid item id: %q", args[0])
		}

		client, closeFn := newHNClient()
		defer closeFn()

		fresh := hackernews.PreferCache
		if commentsRefresh {
			fresh = hackernews.BypassCache
		}

		ctx := context.Background()
		root, err := client.FetchItem(ctx, id, fresh)
		if err != nil {
			return fmt.Errorf("fetch item %d: %w", id, err)
		}

		tree := comments.NewBuilder(client, fresh).Build(ctx, root.Kids)
		if commentsCollapse {
			comments.CollapseAll(tree)
		}

		out := cmd.OutOrStdout()
		now := time.Now()
		fmt.Fprintf(out, "%s\n", root.Title)
		fmt.Fprintf(out, "%d points by %s %s | %d comments\n\n",
			root.Score, root.By, model.RelativeTime(root.Time, now), root.Descendants)
		if root.Text != "" {
			fmt.Fprintf(out, "%s\n\n", model.PlainText(root.Text))
		}
		printTree(out, tree, 0, now)
		return nil
	},
}

func printTree(out io.Writer, nodes []*comments.Node, depth int, now time.Time) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		fmt.Fprintf(out, "%s[%d] %s %s\n", indent, n.ID, n.Item.By, model.RelativeTime(n.Item.Time, now))
		if n.Collapsed {
			fmt.Fprintf(out, "%s  (%d replies hidden)\n", indent, comments.Count(n.Children))
			continue
		}
		for _, line := range strings.Split(model.PlainText(n.Item.Text), "\n") {
			fmt.Fprintf(out, "%s  %s\n", indent, line)
		}
		printTree(out, n.Children, depth+1, now)
	}
}

func init() {
	commentsCmd.Flags().BoolVar(&commentsRefresh, "refresh", false, "bypass caches and fetch fresh data")
	commentsCmd.Flags().BoolVar(&commentsCollapse, "collapsed", false, "show only top-level comments")
	rootCmd.AddCommand(commentsCmd)
}
