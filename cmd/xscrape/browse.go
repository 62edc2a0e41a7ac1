package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/checkpoint"
	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/webscraper"
)

var browseCmd = &cobra.Command{
	Use:   "browse <tweet-url>",
	Short: "Scrape a single conversation with a real browser",
	Long: `Open the tweet URL in a headless Chrome instance and scrape the visible
conversation by scrolling the page. No API credentials needed; saved
X.com cookies (if configured) are injected for logged-in content.

This path sees only what the page renders, so it captures fewer tweets
than the API but works without a RapidAPI subscription.`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

var (
	browseScrolls int
	browseHeadful bool
)

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.Flags().IntVar(&browseScrolls, "scrolls", 0, "number of page scrolls to load replies (default from config)")
	browseCmd.Flags().BoolVar(&browseHeadful, "headful", false, "show the browser window")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	scrolls := browseScrolls
	if scrolls <= 0 {
		scrolls = globalConfig.Browser.MaxScrolls
	}

	var cookies *webscraper.CookieStore
	if path := globalConfig.Browser.CookiePath; path != "" {
		cookies = webscraper.NewCookieStore(path)
	}

	headless := globalConfig.Browser.Headless && !browseHeadful
	ws := webscraper.New(headless, cookies)

	fmt.Printf("Scraping %s (%d scrolls)...\n", args[0], scrolls)
	conv, err := ws.ScrapeConversation(cmd.Context(), args[0], scrolls)
	if err != nil {
		return err
	}

	cp := checkpoint.New(outputDir)
	name := checkpoint.Filename("thread_"+conv.Tweets[0].Tweet.ID, time.Now())
	path, err := cp.Save(name, conv)
	if err != nil {
		return err
	}

	fmt.Printf("Main tweets:  %d\n", conv.TotalMainTweets)
	fmt.Printf("Replies:      %d\n", conv.TotalReplies)
	fmt.Printf("Saved to:     %s\n", path)
	return nil
}
