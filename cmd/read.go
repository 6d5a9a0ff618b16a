package cmd

import (
	"context"
	"fmt"
	"time"

	"hn-reader/internal/markdown"
	"hn-reader/internal/model"
	"hn-reader/internal/reader"

	"github.com/spf13/cobra"
)

var (
	readImages  bool
	readTimeout time.Duration
	readOut     string
	readHTML    bool
)

var readCmd = &cobra.Command{
	Use:   "read <url>",
	Short: "Extract a readable version of an article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		rawURL := args[0]

		allowImages := cfg.Reader.ShowImages
		if cmd.Flags().Changed("images") {
			allowImages = readImages
		}
		timeout := readTimeout
		if !cmd.Flags().Changed("timeout") {
			if d, err := time.ParseDuration(cfg.Reader.Timeout); err == nil {
				timeout = d
			}
		}

		ex := reader.NewExtractor(reader.NewCache(cfg.Reader.CacheDir))
		article := ex.ExtractWithTimeout(context.Background(), rawURL, allowImages, timeout)
		if article == nil {
			// Extraction failed or timed out; the raw page is the fallback.
			fmt.Fprintf(cmd.OutOrStdout(), "could not extract a readable version; open directly: %s\n", rawURL)
			return nil
		}

		out := cmd.OutOrStdout()
		if readOut != "" {
			doc := markdown.Document{
				Frontmatter: map[string]any{
					"title":        article.Title,
					"url":          article.URL,
					"extracted_at": article.ExtractedAt.Format(time.RFC3339),
				},
				Body: "# " + article.Title + "\n\n" + model.PlainText(article.ContentHTML),
			}
			if err := markdown.WriteFile(readOut, doc); err != nil {
				return fmt.Errorf("write %s: %w", readOut, err)
			}
			fmt.Fprintf(out, "saved %s\n", readOut)
			return nil
		}

		if readHTML {
			fmt.Fprintln(out, article.ContentHTML)
			return nil
		}
		fmt.Fprintf(out, "%s\n\n%s\n", article.Title, model.PlainText(article.ContentHTML))
		return nil
	},
}

func init() {
	readCmd.Flags().BoolVar(&readImages, "images", false, "keep images in the extracted article")
	readCmd.Flags().DurationVar(&readTimeout, "timeout", reader.DefaultTimeout, "extraction deadline")
	readCmd.Flags().StringVar(&readOut, "out", "", "save the article as Markdown to this path")
	readCmd.Flags().BoolVar(&readHTML, "html", false, "print the wrapped HTML instead of plain text")
	rootCmd.AddCommand(readCmd)
}
