// Package api implements the HTTP client for the remote commerce API.
// The API is JSON in both directions; a non-2xx status is the sole error
// signal, with an optional free-text "detail" field in the body.
package api

import "net/http"

// HTTPClient interface for HTTP requests (enables testing)
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Verify http.Client implements HTTPClient
var _ HTTPClient = (*http.Client)(nil)
