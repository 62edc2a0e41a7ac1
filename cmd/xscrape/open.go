package main

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/checkpoint"
	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/config"
)

var openCmd = &cobra.Command{
	Use:   "open [file]",
	Short: "Open a checkpoint or the output directory in the default viewer",
	Long: `Open the given file with the system default application. Without an
argument the most recent checkpoint in the output directory is opened.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOpen,
}

var (
	openDir    bool
	openConfig bool
)

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().BoolVar(&openDir, "dir", false, "open the output directory instead of a file")
	openCmd.Flags().BoolVar(&openConfig, "config", false, "open the config file")
}

func runOpen(cmd *cobra.Command, args []string) error {
	if openConfig {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		return browser.OpenFile(path)
	}
	if openDir {
		return browser.OpenFile(outputDir)
	}
	if len(args) == 1 {
		return browser.OpenFile(args[0])
	}

	cp := checkpoint.New(outputDir)
	latest, err := cp.Latest()
	if err != nil {
		return fmt.Errorf("no checkpoint found in %s: %w", outputDir, err)
	}
	return browser.OpenFile(cp.Path(latest))
}
