package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/analysis"
	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/checkpoint"
	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats [checkpoint.json]",
	Short: "Summarize a downloaded conversation",
	Long: `Print reply statistics for a checkpoint file: unique repliers, the most
active one, and the average reply length. Without an argument the most
recent checkpoint in the output directory is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

var statsArchive bool

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsArchive, "archive", false, "also report the size of the SQLite archive")
}

func runStats(cmd *cobra.Command, args []string) error {
	dir := outputDir
	var name string
	if len(args) == 1 {
		dir = filepath.Dir(args[0])
		name = filepath.Base(args[0])
	}

	cp := checkpoint.New(dir)
	if name == "" {
		latest, err := cp.Latest()
		if err != nil {
			return fmt.Errorf("no checkpoint found in %s: %w", dir, err)
		}
		name = latest
	}

	conv, err := cp.Load(name)
	if err != nil {
		return err
	}

	fmt.Printf("Checkpoint: %s\n", cp.Path(name))
	fmt.Printf("Query:      %s (%s)\n\n", conv.Query, conv.SearchType)
	fmt.Println(analysis.Analyze(conv).Summary())

	if statsArchive {
		archive, err := store.New(globalConfig.Monitor.ArchivePath)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer archive.Close()
		n, err := archive.CountTweets()
		if err != nil {
			return err
		}
		fmt.Printf("\nArchive: %d tweets in %s\n", n, globalConfig.Monitor.ArchivePath)
	}
	return nil
}
