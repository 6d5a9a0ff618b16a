package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hn-reader/internal/model"
	"hn-reader/worker"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the prefetch workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		client, closeFn := newHNClient()
		defer closeFn()

		interval, err := time.ParseDuration(cfg.Prefetch.Interval)
		if err != nil {
			return fmt.Errorf("invalid prefetch interval: %w", err)
		}
		feeds := make([]model.FeedKind, 0, len(cfg.Prefetch.Feeds))
		for _, name := range cfg.Prefetch.Feeds {
			k, err := model.ParseFeedKind(name)
			if err != nil {
				return err
			}
			feeds = append(feeds, k)
		}

		prefetcher := &worker.Prefetcher{
			Client:   client,
			Feeds:    feeds,
			Interval: interval,
		}

		mgr := worker.NewManager(prefetcher)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			slog.Info("received signal, shutting down", "signal", s.String())
			cancel()
		}()

		slog.Info("starting prefetcher", "feeds", cfg.Prefetch.Feeds, "interval", interval)
		return mgr.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
