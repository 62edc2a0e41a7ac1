// Package api implements the RapidAPI twitter-api45 client: one bounded HTTP
// request per page of search results or replies.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/types"
)

// Client issues requests against the RapidAPI twitter search endpoints.
type Client struct {
	apiKey  string
	apiHost string
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the given RapidAPI credentials.
func NewClient(apiKey, apiHost string) *Client {
	return &Client{
		apiKey:  apiKey,
		apiHost: apiHost,
		baseURL: "https://" + apiHost + "/v1",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// pageEnvelope is the common {tweets, cursor} response body.
type pageEnvelope struct {
	Tweets []types.Tweet `json:"tweets"`
	Cursor string        `json:"cursor"`
}

// searchEnvelope covers both response shapes the search endpoint emits:
// results nested under "data" or at the top level.
type searchEnvelope struct {
	Data   *pageEnvelope `json:"data"`
	Tweets []types.Tweet `json:"tweets"`
	Cursor string        `json:"cursor"`
}

// SearchTweets fetches one page of search results for a query. An empty
// cursor requests the first page.
func (c *Client) SearchTweets(ctx context.Context, query, mode, cursor string) (*types.Page, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("mode", mode)
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	body, err := c.get(ctx, "/search/tweets", params)
	if err != nil {
		return nil, err
	}

	var envelope searchEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		// Malformed responses count as an empty page, not a failure.
		log.Printf("[api] malformed search response: %v", err)
		return &types.Page{}, nil
	}

	if envelope.Data != nil {
		return &types.Page{Tweets: envelope.Data.Tweets, Cursor: envelope.Data.Cursor}, nil
	}
	return &types.Page{Tweets: envelope.Tweets, Cursor: envelope.Cursor}, nil
}

// TweetReplies fetches one page of replies for a tweet ID. An empty cursor
// requests the first page.
func (c *Client) TweetReplies(ctx context.Context, tweetID, cursor string) (*types.Page, error) {
	params := url.Values{}
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	body, err := c.get(ctx, "/tweets/"+tweetID+"/replies", params)
	if err != nil {
		return nil, err
	}

	var envelope pageEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		log.Printf("[api] malformed replies response for tweet %s: %v", tweetID, err)
		return &types.Page{}, nil
	}

	return &types.Page{Tweets: envelope.Tweets, Cursor: envelope.Cursor}, nil
}

// get performs a single GET request and classifies failures into the
// transport/authorization taxonomy.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.apiHost)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &AuthError{StatusCode: resp.StatusCode, Body: string(body)}
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("api returned %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
