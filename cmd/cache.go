package cmd

import (
	"fmt"

	"hn-reader/internal/reader"

	"github.com/spf13/cobra"
)

// cacheCmd groups reader-cache subcommands.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Reader cache utilities",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached article",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		reader.NewCache(cfg.Reader.CacheDir).Clear()
		fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", cfg.Reader.CacheDir)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
