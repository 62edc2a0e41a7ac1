// Command xscrape downloads X.com conversations (tweets plus replies) for a
// hashtag or free-text query through the RapidAPI search endpoints.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
