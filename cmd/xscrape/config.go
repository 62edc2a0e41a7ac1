package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Printf("Config file:   %s\n", path)
		fmt.Printf("Output dir:    %s\n", globalConfig.Scraping.OutputDir)
		fmt.Printf("Search mode:   %s\n", globalConfig.Scraping.Mode)
		fmt.Printf("Page delay:    %d ms\n", globalConfig.Scraping.PageDelayMS)
		fmt.Printf("Reply delay:   %d ms\n", globalConfig.Scraping.ReplyDelayMS)
		fmt.Printf("Checkpoint:    every %d tweets\n", globalConfig.Scraping.CheckpointEvery)
		fmt.Printf("Monitor:       every %d minutes\n", globalConfig.Monitor.IntervalMinutes)
		fmt.Printf("Archive:       %s\n", globalConfig.Monitor.ArchivePath)
		if _, _, err := globalConfig.Credentials(); err != nil {
			fmt.Printf("Credentials:   not set (%v)\n", err)
		} else {
			fmt.Println("Credentials:   configured")
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := globalConfig.Save(); err != nil {
			return err
		}
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Printf("Config written to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}
