package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/api"
	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/checkpoint"
	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/config"
	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/scraper"
)

var globalConfig *config.Config

var outputDir string

var rootCmd = &cobra.Command{
	Use:   "xscrape",
	Short: "Download X.com conversations around a hashtag or search term",
	Long: `xscrape retrieves the full conversation around a hashtag or free-text
query: the matching tweets plus, for each one, its replies. Progress is
checkpointed to disk continuously, so an interrupted download loses at most
a few tweets' worth of work.

Credentials come from RAPIDAPI_KEY and RAPIDAPI_HOST (environment or config
file).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		globalConfig = cfg
		if outputDir == "" {
			outputDir = cfg.Scraping.OutputDir
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "directory for checkpoints and exports (default from config)")
}

// newScraper builds the retrieval engine from the resolved credentials and
// config.
func newScraper() (*scraper.Scraper, error) {
	key, host, err := globalConfig.Credentials()
	if err != nil {
		return nil, err
	}

	client := api.NewClient(key, host)
	s := scraper.New(client, checkpoint.New(outputDir))
	s.SetDelays(
		time.Duration(globalConfig.Scraping.PageDelayMS)*time.Millisecond,
		time.Duration(globalConfig.Scraping.ReplyDelayMS)*time.Millisecond,
	)
	if every := globalConfig.Scraping.CheckpointEvery; every > 0 {
		s.SetCheckpointPolicy(func(processed, total int) bool {
			return processed%every == 0 || processed == total
		})
	}
	return s, nil
}

// explainError adds remediation guidance for authorization failures.
func explainError(err error) error {
	var authErr *api.AuthError
	if errors.As(err, &authErr) {
		return fmt.Errorf("%w\n\n%s", err, authErr.Hint())
	}
	return err
}

// parseDay parses the DD-MM-YYYY calendar dates taken on the command line.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("02-01-2006", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected DD-MM-YYYY): %w", s, err)
	}
	return t, nil
}
