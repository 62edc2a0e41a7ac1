// Package webscraper extracts a conversation directly from an X.com thread
// page with a headless browser. It is the lower-rigor fallback to the API
// engine: no pagination cursors, just scrolling, and best-effort field
// extraction from the DOM.
package webscraper

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/browser"
	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/types"
)

// Scraper drives a browser session against a thread page.
type Scraper struct {
	headless bool
	cookies  *CookieStore // optional; nil means an unauthenticated session
}

// New creates a browser scraper. cookies may be nil.
func New(headless bool, cookies *CookieStore) *Scraper {
	return &Scraper{headless: headless, cookies: cookies}
}

// ScrapeConversation loads a tweet's thread page, scrolls maxScrolls times
// to surface replies, and returns the main tweet plus the visible replies as
// a completed conversation. Extraction is best effort: a reply that fails to
// parse is skipped, not fatal.
func (s *Scraper) ScrapeConversation(ctx context.Context, tweetURL string, maxScrolls int) (*types.Conversation, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, browser.Options(s.headless)...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	browserCtx, timeoutCancel := context.WithTimeout(browserCtx, 5*time.Minute)
	defer timeoutCancel()

	if s.cookies != nil && s.cookies.IsValid() {
		if err := s.injectCookies(browserCtx); err != nil {
			return nil, fmt.Errorf("failed to inject cookies: %w", err)
		}
	}

	log.Printf("[webscraper] loading %s", tweetURL)
	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(tweetURL),
		chromedp.WaitVisible(TweetArticle, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("failed to load thread: %w", err)
	}

	// Let the reply section settle before the first extraction
	_ = chromedp.Run(browserCtx, chromedp.Sleep(2*time.Second))

	for i := 0; i < maxScrolls; i++ {
		if err := chromedp.Run(browserCtx,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(2*time.Second),
		); err != nil {
			log.Printf("[webscraper] scroll %d/%d failed: %v", i+1, maxScrolls, err)
			break
		}
	}

	tweets, err := s.extractTweets(browserCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract tweets: %w", err)
	}
	if len(tweets) == 0 {
		return nil, fmt.Errorf("no tweets found at %s", tweetURL)
	}

	conv := &types.Conversation{
		Query:        tweetURL,
		SearchType:   types.SearchTypeText,
		Mode:         "browser",
		DownloadedAt: time.Now().Format(time.RFC3339),
		Status:       types.StatusCompleted,
		Tweets:       []types.TweetWithReplies{},
	}
	// First article is the main tweet, the rest are replies
	conv.Append(tweets[0], tweets[1:])
	conv.RecomputeTotals()

	log.Printf("[webscraper] extracted main tweet plus %d replies", len(tweets)-1)
	return conv, nil
}

// injectCookies sets the stored session cookies in the browser context.
func (s *Scraper) injectCookies(ctx context.Context) error {
	cookies, err := s.cookies.XCookies()
	if err != nil {
		return err
	}

	return chromedp.Run(ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			for _, c := range cookies {
				err := network.SetCookie(c.Name, c.Value).
					WithDomain(c.Domain).
					WithPath(c.Path).
					WithSecure(c.Secure).
					WithHTTPOnly(c.HTTPOnly).
					WithSameSite(c.SameSite).
					Do(ctx)
				if err != nil {
					return err
				}
			}
			return nil
		}),
	)
}

// rawTweet is the data pulled from the DOM via JavaScript.
type rawTweet struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	Likes     string `json:"likes"`
	Retweets  string `json:"retweets"`
	Replies   string `json:"replies"`
	URL       string `json:"url"`
}

// extractJS pulls every visible tweet article in DOM order. Built from the
// selector constants so selectors.go stays the single place to update.
var extractJS = fmt.Sprintf(`
	(function() {
		const articles = document.querySelectorAll('%s');
		const results = [];

		articles.forEach(el => {
			try {
				const statusLink = el.querySelector('%s');
				const id = statusLink?.href?.match(/status\/(\d+)/)?.[1];
				if (!id) return;

				const userNameEl = el.querySelector('%s');
				let username = '';
				let name = '';
				if (userNameEl) {
					const handleLink = userNameEl.querySelector('a[href^="/"]');
					if (handleLink) {
						username = handleLink.getAttribute('href')?.replace('/', '') || '';
					}
					name = userNameEl.querySelector('span')?.textContent || '';
				}

				const text = el.querySelector('%s')?.textContent || '';
				const timestamp = el.querySelector('%s')?.getAttribute('datetime') || '';

				const getMetric = (sel) => {
					const metricEl = el.querySelector(sel);
					if (!metricEl) return '0';
					const ariaLabel = metricEl.getAttribute('aria-label');
					if (ariaLabel) {
						const match = ariaLabel.match(/^([\d,.]+[KkMm]?)/);
						return match ? match[1] : '0';
					}
					return metricEl.textContent?.trim() || '0';
				};

				results.push({
					id,
					username,
					name,
					text,
					timestamp,
					likes: getMetric('%s'),
					retweets: getMetric('%s'),
					replies: getMetric('%s'),
					url: statusLink?.href || ''
				});
			} catch (e) {
				console.error('Error extracting tweet:', e);
			}
		});

		return results;
	})()
`, TweetArticle, TweetLink, TweetAuthor, TweetText, TweetTimestamp,
	LikeCount, RetweetCount, ReplyCount)

// extractTweets parses every visible tweet article on the page, in DOM
// order.
func (s *Scraper) extractTweets(ctx context.Context) ([]types.Tweet, error) {
	var raw []rawTweet
	if err := chromedp.Run(ctx, chromedp.Evaluate(extractJS, &raw)); err != nil {
		return nil, err
	}

	tweets := make([]types.Tweet, 0, len(raw))
	for _, r := range raw {
		if r.ID == "" {
			continue
		}

		t := types.Tweet{
			ID:           r.ID,
			Username:     r.Username,
			Name:         r.Name,
			Text:         r.Text,
			Likes:        parseMetric(r.Likes),
			Retweets:     parseMetric(r.Retweets),
			Replies:      parseMetric(r.Replies),
			PermanentURL: r.URL,
		}
		if r.Timestamp != "" {
			if parsed, err := time.Parse(time.RFC3339, r.Timestamp); err == nil {
				t.Timestamp = parsed.Unix()
				t.TimeParsed = r.Timestamp
			}
		}
		tweets = append(tweets, t)
	}

	return tweets, nil
}

// parseMetric converts abbreviated metric strings like "1.2K", "5.7M", or
// "423" to integers.
func parseMetric(s string) int {
	if s == "" {
		return 0
	}

	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")

	multiplier := 1.0
	if strings.HasSuffix(strings.ToUpper(s), "K") {
		multiplier = 1000
		s = s[:len(s)-1]
	} else if strings.HasSuffix(strings.ToUpper(s), "M") {
		multiplier = 1000000
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return int(value * multiplier)
}
