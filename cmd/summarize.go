package cmd

import (
	"context"
	"fmt"
	"time"

	"hn-reader/internal/ai"
	"hn-reader/internal/model"
	"hn-reader/internal/reader"

	"github.com/spf13/cobra"
)

var summarizeLang string

var summarizeCmd = &cobra.Command{
	Use:   "summarize <url>",
	Short: "Extract an article and summarize it with OpenAI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg.OpenAI.APIKey == "" {
			return fmt.Errorf("openai config missing: set openai.api_key and openai.model in config.yaml")
		}

		timeout := reader.DefaultTimeout
		if d, err := time.ParseDuration(cfg.Reader.Timeout); err == nil {
			timeout = d
		}

		ctx := context.Background()
		ex := reader.NewExtractor(reader.NewCache(cfg.Reader.CacheDir))
		article := ex.ExtractWithTimeout(ctx, args[0], cfg.Reader.ShowImages, timeout)
		if article == nil {
			return fmt.Errorf("could not extract a readable version of %s", args[0])
		}

		summarizer := ai.NewOpenAI(ai.Config{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
		})
		summary, err := summarizer.SummarizeArticle(ctx, article.Title, model.PlainText(article.ContentHTML), summarizeLang)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n\n%s\n", article.Title, summary)
		return nil
	},
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeLang, "lang", "", "summary language (default English)")
	rootCmd.AddCommand(summarizeCmd)
}
