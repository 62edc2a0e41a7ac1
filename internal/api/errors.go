package api

import (
	"fmt"
	"net/http"
)

// TransportError wraps a network-level failure (connection refused, timeout).
// The enclosing pagination loop stops on it without retrying.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthError signals rejected credentials (401) or a key that is not
// subscribed to the API (403). Surfaced distinctly so callers can show
// remediation guidance instead of a generic failure.
type AuthError struct {
	StatusCode int
	Body       string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authorization failed (HTTP %d): %s", e.StatusCode, e.Body)
}

// Hint returns remediation guidance for the failure, if any.
func (e *AuthError) Hint() string {
	if e.StatusCode == http.StatusForbidden {
		return "Your API key is not subscribed to this API on RapidAPI.\n" +
			"  1. Visit https://rapidapi.com/omarmhaimdat/api/twitter-api45\n" +
			"  2. Subscribe to a plan (free tiers are available)\n" +
			"  3. Update RAPIDAPI_KEY in your environment or config if needed"
	}
	return "Check that RAPIDAPI_KEY and RAPIDAPI_HOST are set correctly."
}
