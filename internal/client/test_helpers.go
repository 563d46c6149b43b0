package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"

	internalhttp "github.com/graphwell-io/hubsync/internal/http"
	"github.com/graphwell-io/hubsync/pkg/hubspot"
)

// Test static errors.
var (
	ErrTestSomeError = errors.New("some error")
)

// NewTestClient creates a client facade against a test server URL, without
// authentication or execution history.
func NewTestClient(baseURL string) *Client {
	return NewTestClientWithHistory(baseURL, nil)
}

// NewTestClientWithHistory creates a client facade against a test server URL
// with the given execution history.
func NewTestClientWithHistory(baseURL string, history *hubspot.ExecutionHistory) *Client {
	httpClient := internalhttp.NewClient(baseURL, nil)

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		history:    history,
	}

	client.initializeResourceClients()

	return client
}

// RequestCounter counts requests through a wrapped handler, for asserting
// how many pages an iteration fetched.
type RequestCounter struct {
	count atomic.Int64
}

// Count returns the number of requests observed so far.
func (c *RequestCounter) Count() int {
	return int(c.count.Load())
}

// Wrap returns a handler that increments the counter and delegates.
func (c *RequestCounter) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		c.count.Add(1)
		next(writer, request)
	}
}

// WriteJSON encodes v onto a test response writer.
func WriteJSON(writer http.ResponseWriter, v interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(writer).Encode(v)
}

// WriteError encodes a provider error body with the given HTTP status.
func WriteError(writer http.ResponseWriter, statusCode int, category, message string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(&hubspot.ResponseError{
		Status:        "error",
		Message:       message,
		Category:      category,
		CorrelationID: "test-correlation-id",
	})
}
