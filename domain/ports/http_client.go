package ports

import (
	"context"
)

// HTTPClient defines the transport capability used by the dispatcher.
// Infrastructure adapters implement this to provide HTTP functionality.
//
// A non-nil response may accompany a non-nil error when the status line and
// headers arrived but the body could not be read.
type HTTPClient interface {
	// Get performs an HTTP GET request without a body.
	Get(ctx context.Context, url string) (*HTTPResponse, error)

	// Post performs an HTTP POST request with the given headers and body.
	Post(ctx context.Context, url string, headers map[string]string, body []byte) (*HTTPResponse, error)
}

// HTTPResponse represents an HTTP response.
type HTTPResponse struct {
	Headers       map[string][]string
	Body          []byte
	Proto         string // e.g. "HTTP/1.1"
	StatusCode    int
	BodyTruncated bool
}
