package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/scheduler"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <query>",
	Short: "Run downloads on a recurring cron schedule",
	Long: `Download the conversation for a query on a recurring schedule, running
until interrupted. Each run writes its own checkpoint file. Give either
--every-hours or a full five-field --cron expression.`,
	Args: cobra.ExactArgs(1),
	RunE: runSchedule,
}

var (
	schedEveryHours int
	schedCron       string
)

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().IntVar(&schedEveryHours, "every-hours", 6, "run the download every N hours")
	scheduleCmd.Flags().StringVar(&schedCron, "cron", "", "cron expression overriding --every-hours, e.g. \"30 8 * * *\"")

	scheduleCmd.Flags().BoolVar(&dlText, "text", false, "treat the query as free text instead of a hashtag")
	scheduleCmd.Flags().StringVar(&dlMode, "mode", "", "search mode: latest, top, photos, videos (default from config)")
	scheduleCmd.Flags().IntVar(&dlMax, "max", 0, "maximum number of main tweets per run (0 = all available)")
	scheduleCmd.Flags().BoolVar(&dlNoReplies, "no-replies", false, "skip downloading replies")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	s, err := newScraper()
	if err != nil {
		return err
	}

	opts, err := downloadOptions(args[0])
	if err != nil {
		return err
	}

	job := func(ctx context.Context) error {
		conv, err := s.DownloadConversation(ctx, opts)
		if err != nil {
			return err
		}
		path, err := s.SaveJSON(conv)
		if err != nil {
			return err
		}
		fmt.Printf("Downloaded %d items to %s\n", conv.TotalItems, path)
		return nil
	}

	sched := scheduler.New()
	if schedCron != "" {
		err = sched.AddJob("download", schedCron, job)
	} else {
		err = sched.AddDownloadJob(schedEveryHours, job)
	}
	if err != nil {
		return err
	}

	sched.Start()
	if next, ok := sched.NextRun("download"); ok {
		fmt.Printf("Scheduled %q, next run at %s. Press Ctrl-C to stop.\n",
			args[0], next.Format(time.RFC1123))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	<-ctx.Done()

	<-sched.Stop().Done()
	fmt.Println("\nScheduler stopped")
	return nil
}
