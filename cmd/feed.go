package cmd

import (
	"context"
	"fmt"
	"time"

	"hn-reader/internal/feed"
	"hn-reader/internal/model"

	"github.com/spf13/cobra"
)

var (
	feedPages   int
	feedRefresh bool
)

var feedCmd = &cobra.Command{
	Use:   "feed [top|new|best|ask|show|jobs]",
	Short: "List stories from a feed",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := model.FeedTop
		if len(args) == 1 {
			k, err := model.ParseFeedKind(args[0])
			if err != nil {
				return err
			}
			kind = k
		}

		client, closeFn := newHNClient()
		defer closeFn()

		ctrl := feed.NewController(client, kind)
		ctx := context.Background()

		var err error
		if feedRefresh {
			err = ctrl.Refresh(ctx)
		} else {
			err = ctrl.LoadInitial(ctx)
		}
		if err != nil {
			return fmt.Errorf("load %s feed: %w", kind, err)
		}

		for p := 1; p < feedPages && !ctrl.Exhausted(); p++ {
			items := ctrl.Items()
			if len(items) == 0 {
				break
			}
			if err := ctrl.LoadMoreIfNeeded(ctx, items[len(items)-1].ID); err != nil {
				return err
			}
		}

		printFeed(cmd, kind, ctrl.Items())
		return nil
	},
}

func printFeed(cmd *cobra.Command, kind model.FeedKind, items []model.Item) {
	out := cmd.OutOrStdout()
	now := time.Now()
	fmt.Fprintf(out, "%s stories\n\n", kind.DisplayName())
	for i, it := range items {
		title := it.Title
		if title == "" {
			title = model.PlainText(it.Text)
		}
		if host := model.Host(it.URL); host != "" {
			fmt.Fprintf(out, "%3d. %s (%s)\n", i+1, title, host)
		} else {
			fmt.Fprintf(out, "%3d. %s\n", i+1, title)
		}
		fmt.Fprintf(out, "     %d points by %s %s | %d comments | id %d\n",
			it.Score, it.By, model.RelativeTime(it.Time, now), it.Descendants, it.ID)
	}
}

func init() {
	feedCmd.Flags().IntVar(&feedPages, "pages", 1, "number of pages to load (30 stories each)")
	feedCmd.Flags().BoolVar(&feedRefresh, "refresh", false, "bypass caches and fetch fresh data")
	rootCmd.AddCommand(feedCmd)
}
