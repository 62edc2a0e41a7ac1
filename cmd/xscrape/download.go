package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/export"
	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/scraper"
	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/types"
)

var downloadCmd = &cobra.Command{
	Use:   "download <query>[,<query>...]",
	Short: "Download the conversation for one or more search terms",
	Long: `Download the matching tweets for a query and, unless --no-replies is
given, the replies to each one. Multiple comma-separated terms are
downloaded sequentially, each into its own checkpoint file.`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

var (
	dlText         bool
	dlMode         string
	dlMax          int
	dlSince        string
	dlUntil        string
	dlNoReplies    bool
	dlCSV          bool
	dlFlatCSV      bool
	dlMinLikes     int
	dlVerifiedOnly bool
)

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().BoolVar(&dlText, "text", false, "treat the query as free text instead of a hashtag")
	downloadCmd.Flags().StringVar(&dlMode, "mode", "", "search mode: latest, top, photos, videos (default from config)")
	downloadCmd.Flags().IntVar(&dlMax, "max", 0, "maximum number of main tweets (0 = all available)")
	downloadCmd.Flags().StringVar(&dlSince, "since", "", "oldest date to include, DD-MM-YYYY")
	downloadCmd.Flags().StringVar(&dlUntil, "until", "", "newest date to include, DD-MM-YYYY")
	downloadCmd.Flags().BoolVar(&dlNoReplies, "no-replies", false, "skip downloading replies")
	downloadCmd.Flags().BoolVar(&dlCSV, "csv", false, "also export a CSV (one row per main tweet)")
	downloadCmd.Flags().BoolVar(&dlFlatCSV, "flat-csv", false, "also export a flat CSV (one row per reply)")
	downloadCmd.Flags().IntVar(&dlMinLikes, "min-likes", 0, "keep only tweets with at least this many likes")
	downloadCmd.Flags().BoolVar(&dlVerifiedOnly, "verified-only", false, "keep only tweets from verified accounts")
}

// downloadOptions assembles the engine options shared by download and
// monitor.
func downloadOptions(query string) (scraper.DownloadOptions, error) {
	since, err := parseDay(dlSince)
	if err != nil {
		return scraper.DownloadOptions{}, err
	}
	until, err := parseDay(dlUntil)
	if err != nil {
		return scraper.DownloadOptions{}, err
	}

	mode := dlMode
	if mode == "" {
		mode = globalConfig.Scraping.Mode
	}

	bounds := types.DayBounds(since, until)
	bounds.MaxTweets = dlMax

	return scraper.DownloadOptions{
		Query:          query,
		Mode:           mode,
		Hashtag:        !dlText,
		Bounds:         bounds,
		IncludeReplies: !dlNoReplies,
	}, nil
}

func downloadFilters() scraper.Filters {
	return scraper.Filters{MinLikes: dlMinLikes, VerifiedOnly: dlVerifiedOnly}
}

func runDownload(cmd *cobra.Command, args []string) error {
	s, err := newScraper()
	if err != nil {
		return err
	}

	var queries []string
	for _, q := range strings.Split(args[0], ",") {
		if q = strings.TrimSpace(q); q != "" {
			queries = append(queries, q)
		}
	}
	if len(queries) == 0 {
		return fmt.Errorf("no search terms given")
	}

	for i, query := range queries {
		if len(queries) > 1 {
			fmt.Printf("\n=== search %d/%d: %s ===\n", i+1, len(queries), query)
		}
		if err := downloadOne(cmd.Context(), s, query); err != nil {
			return err
		}
	}
	return nil
}

func downloadOne(ctx context.Context, s *scraper.Scraper, query string) error {
	opts, err := downloadOptions(query)
	if err != nil {
		return err
	}

	conv, err := s.DownloadConversation(ctx, opts)
	if err != nil {
		return explainError(err)
	}

	if f := downloadFilters(); f.Active() {
		conv = scraper.ApplyFilters(conv, f)
	}

	path, err := s.SaveJSON(conv)
	if err != nil {
		return err
	}

	if dlCSV {
		if csvPath, err := export.CSV(conv, outputDir, ""); err != nil {
			fmt.Printf("CSV export failed: %v\n", err)
		} else {
			fmt.Printf("CSV exported to: %s\n", csvPath)
		}
	}
	if dlFlatCSV {
		if csvPath, err := export.FlatCSV(conv, outputDir, ""); err != nil {
			fmt.Printf("flat CSV export failed: %v\n", err)
		} else {
			fmt.Printf("flat CSV exported to: %s\n", csvPath)
		}
	}

	fmt.Printf("\nQuery:        %s (%s)\n", conv.Query, conv.SearchType)
	fmt.Printf("Main tweets:  %d\n", conv.TotalMainTweets)
	fmt.Printf("Replies:      %d\n", conv.TotalReplies)
	fmt.Printf("Total items:  %d\n", conv.TotalItems)
	fmt.Printf("Saved to:     %s\n", path)
	return nil
}
