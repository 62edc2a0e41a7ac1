package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/export"
	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/scraper"
	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/store"
	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/types"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor <query>",
	Short: "Periodically re-download a conversation and report new tweets",
	Long: `Repeatedly download the conversation for a query, reporting after each
iteration how many main tweets were not seen in any earlier iteration.
Every iteration writes its own checkpoint file. Stop with Ctrl-C, or set
--duration to bound the run.

With --archive, every downloaded tweet is also upserted into a local
SQLite database so engagement counters stay current across runs.`,
	Args: cobra.ExactArgs(1),
	RunE: runMonitor,
}

var (
	monInterval int
	monDuration int
	monCSV      bool
	monArchive  bool
)

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().IntVar(&monInterval, "interval", 0, "minutes between iterations (default from config)")
	monitorCmd.Flags().IntVar(&monDuration, "duration", 0, "stop after this many hours (0 = run until interrupted)")
	monitorCmd.Flags().BoolVar(&monCSV, "csv", false, "export a CSV after each iteration")
	monitorCmd.Flags().BoolVar(&monArchive, "archive", false, "upsert tweets into the SQLite archive after each iteration")

	monitorCmd.Flags().BoolVar(&dlText, "text", false, "treat the query as free text instead of a hashtag")
	monitorCmd.Flags().StringVar(&dlMode, "mode", "", "search mode: latest, top, photos, videos (default from config)")
	monitorCmd.Flags().IntVar(&dlMax, "max", 0, "maximum number of main tweets per iteration (0 = all available)")
	monitorCmd.Flags().BoolVar(&dlNoReplies, "no-replies", false, "skip downloading replies")
	monitorCmd.Flags().IntVar(&dlMinLikes, "min-likes", 0, "keep only tweets with at least this many likes")
	monitorCmd.Flags().BoolVar(&dlVerifiedOnly, "verified-only", false, "keep only tweets from verified accounts")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	if strings.Contains(args[0], ",") {
		return fmt.Errorf("monitor watches a single term; got %q", args[0])
	}

	s, err := newScraper()
	if err != nil {
		return err
	}

	opts, err := downloadOptions(args[0])
	if err != nil {
		return err
	}

	interval := monInterval
	if interval <= 0 {
		interval = globalConfig.Monitor.IntervalMinutes
	}

	var archive *store.Store
	if monArchive {
		archive, err = store.New(globalConfig.Monitor.ArchivePath)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer archive.Close()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	iteration := 0
	monOpts := scraper.MonitorOptions{
		Download: opts,
		Filters:  downloadFilters(),
		Interval: time.Duration(interval) * time.Minute,
		Duration: time.Duration(monDuration) * time.Hour,
		OnIteration: func(conv *types.Conversation, savedPath string) {
			iteration++
			fmt.Printf("[%s] iteration %d: %d tweets -> %s\n",
				time.Now().Format("15:04:05"), iteration, conv.TotalItems, savedPath)

			if monCSV && len(conv.Tweets) > 0 {
				if csvPath, err := export.CSV(conv, outputDir, ""); err != nil {
					fmt.Printf("CSV export failed: %v\n", err)
				} else {
					fmt.Printf("CSV exported to: %s\n", csvPath)
				}
			}
			if archive != nil {
				if added, err := archive.SaveConversation(conv); err != nil {
					fmt.Printf("archive update failed: %v\n", err)
				} else if added > 0 {
					fmt.Printf("%d tweets added to archive\n", added)
				}
			}
		},
	}

	fmt.Printf("Monitoring %q every %d minutes. Press Ctrl-C to stop.\n", args[0], interval)
	report := s.Monitor(ctx, monOpts)

	fmt.Printf("\nMonitoring finished: %d iterations, %d unique tweets seen\n",
		report.Iterations, report.UniqueTweets)
	if archive != nil {
		if n, err := archive.CountTweets(); err == nil {
			fmt.Printf("Archive now holds %d tweets\n", n)
		}
	}
	return nil
}
