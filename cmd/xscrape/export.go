package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/checkpoint"
	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export [checkpoint.json]",
	Short: "Export a downloaded conversation to CSV",
	Long: `Export a checkpoint file to CSV. Without an argument the most recent
checkpoint in the output directory is used. The default layout is one row
per main tweet; --flat produces one row per (tweet, reply) pair instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var exportFlat bool

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().BoolVar(&exportFlat, "flat", false, "one row per reply instead of one row per main tweet")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	write := export.CSV
	if exportFlat {
		write = export.FlatCSV
	}
	path, err := write(conv, dir, "")
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d items to %s\n", conv.TotalItems, path)
	return nil
}
