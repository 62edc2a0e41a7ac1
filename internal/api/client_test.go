package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testClient(srv *httptest.Server) *Client {
	c := NewClient("test-key", "test-host")
	c.baseURL = srv.URL + "/v1"
	return c
}

func TestSearchTweetsNestedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/search/tweets" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "#golang" {
			t.Errorf("query = %q, want %q", got, "#golang")
		}
		if got := r.URL.Query().Get("mode"); got != "latest" {
			t.Errorf("mode = %q, want %q", got, "latest")
		}
		if r.URL.Query().Has("cursor") {
			t.Error("first page should not send a cursor")
		}
		if got := r.Header.Get("X-RapidAPI-Key"); got != "test-key" {
			t.Errorf("key header = %q", got)
		}
		w.Write([]byte(`{"data":{"tweets":[{"id":"1","text":"hello"},{"id":"2","text":"world"}],"cursor":"next-1"}}`))
	}))
	defer srv.Close()

	page, err := testClient(srv).SearchTweets(context.Background(), "#golang", "latest", "")
	if err != nil {
		t.Fatalf("SearchTweets: %v", err)
	}
	if len(page.Tweets) != 2 {
		t.Fatalf("got %d tweets, want 2", len(page.Tweets))
	}
	if page.Tweets[0].ID != "1" || page.Tweets[1].Text != "world" {
		t.Errorf("unexpected tweets: %+v", page.Tweets)
	}
	if page.Cursor != "next-1" {
		t.Errorf("cursor = %q, want %q", page.Cursor, "next-1")
	}
}

func TestSearchTweetsFlatEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("cursor"); got != "page-2" {
			t.Errorf("cursor = %q, want %q", got, "page-2")
		}
		w.Write([]byte(`{"tweets":[{"id":"3"}],"cursor":""}`))
	}))
	defer srv.Close()

	page, err := testClient(srv).SearchTweets(context.Background(), "golang", "top", "page-2")
	if err != nil {
		t.Fatalf("SearchTweets: %v", err)
	}
	if len(page.Tweets) != 1 || page.Tweets[0].ID != "3" {
		t.Errorf("unexpected tweets: %+v", page.Tweets)
	}
	if page.Cursor != "" {
		t.Errorf("cursor = %q, want empty", page.Cursor)
	}
}

func TestSearchTweetsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	page, err := testClient(srv).SearchTweets(context.Background(), "#golang", "latest", "")
	if err != nil {
		t.Fatalf("malformed body should not be an error, got %v", err)
	}
	if len(page.Tweets) != 0 || page.Cursor != "" {
		t.Errorf("malformed body should yield an empty page, got %+v", page)
	}
}

func TestTweetReplies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/tweets/12345/replies" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"tweets":[{"id":"r1","text":"a reply"}],"cursor":"more"}`))
	}))
	defer srv.Close()

	page, err := testClient(srv).TweetReplies(context.Background(), "12345", "")
	if err != nil {
		t.Fatalf("TweetReplies: %v", err)
	}
	if len(page.Tweets) != 1 || page.Tweets[0].ID != "r1" {
		t.Errorf("unexpected tweets: %+v", page.Tweets)
	}
	if page.Cursor != "more" {
		t.Errorf("cursor = %q, want %q", page.Cursor, "more")
	}
}

func TestAuthErrorOn403(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"You are not subscribed to this API."}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).SearchTweets(context.Background(), "#golang", "latest", "")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("want *AuthError, got %T: %v", err, err)
	}
	if authErr.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", authErr.StatusCode)
	}
	if !strings.Contains(authErr.Hint(), "rapidapi.com") {
		t.Errorf("403 hint should mention the subscription page, got %q", authErr.Hint())
	}
}

func TestAuthErrorOn401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := testClient(srv).TweetReplies(context.Background(), "1", "")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("want *AuthError, got %T: %v", err, err)
	}
	if authErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", authErr.StatusCode)
	}
}

func TestGenericErrorOn500(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	_, err := testClient(srv).SearchTweets(context.Background(), "#golang", "latest", "")
	if err == nil {
		t.Fatal("expected an error for HTTP 500")
	}
	var authErr *AuthError
	if errors.As(err, &authErr) {
		t.Error("500 should not be classified as an auth error")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error should include the status code, got %q", err.Error())
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := testClient(srv).SearchTweets(context.Background(), "#golang", "latest", "")
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("want *TransportError, got %T: %v", err, err)
	}
	if transportErr.Unwrap() == nil {
		t.Error("transport error should wrap the underlying failure")
	}
}
