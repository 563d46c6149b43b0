// Package http provides the HTTP transport under the HubSpot resource
// clients: URL construction, bearer authentication, JSON codec, typed error
// mapping, and optional request pacing and retries.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/graphwell-io/hubsync/internal/auth"
	"github.com/graphwell-io/hubsync/internal/constants"
	"github.com/graphwell-io/hubsync/pkg/hubspot"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Client is the transport used by every resource client. A failed request is
// not retried unless WithRetryConfig opts in; the connector's iteration
// semantics require a single failure to abort the iteration that issued it.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager auth.TokenManager
	logger       Logger
	userAgent    string
	debug        bool
	limiter      *rate.Limiter
	interceptors *hubspot.InterceptorChain
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger for the client.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithRetryConfig enables retries for transient failures (connection errors,
// HTTP 5xx, and 429). Client errors are never retried.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithRateLimit paces outgoing requests with a token bucket.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(c *Client) {
		if burst < 1 {
			burst = 1
		}

		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// WithInterceptors installs an interceptor chain run around every request.
func WithInterceptors(chain *hubspot.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a new transport for the given base URL. A nil token
// manager sends unauthenticated requests.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	// Exhausted retries surface the final response rather than a synthesized
	// transport error, so a 429 or 5xx still maps to a typed provider error.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   retryClient,
		tokenManager: tokenManager,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Request represents an HTTP request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Do executes a request. Non-2xx responses yield a *hubspot.ResponseError
// carrying the parsed provider error body and the HTTP status line; the
// response is returned alongside the error for callers that need the raw
// payload.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if c.limiter != nil {
		err := c.limiter.Wait(ctx)
		if err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var rawBody interface{}

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		rawBody = data
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}

		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	var interceptReq *hubspot.Request

	if c.interceptors != nil {
		interceptReq = &hubspot.Request{
			Method:  req.Method,
			Path:    req.Path,
			Headers: httpReq.Header,
		}

		err := c.interceptors.ExecuteRequestInterceptors(ctx, interceptReq)
		if err != nil {
			return nil, err
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// PassthroughErrorHandler leaves the body open on the error path.
		if httpResp != nil {
			_ = httpResp.Body.Close()
		}

		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         fullURL,
			"status_code": resp.StatusCode,
		})
	}

	var respErr error
	if resp.StatusCode >= http.StatusBadRequest {
		respErr = c.responseError(req.Path, resp)
	}

	if c.interceptors != nil {
		interceptResp := &hubspot.Response{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       resp.Body,
			Error:      respErr,
		}

		err := c.interceptors.ExecuteResponseInterceptors(ctx, interceptReq, interceptResp)
		if err != nil {
			return resp, err
		}
	}

	return resp, respErr
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// GetJSON issues a GET and decodes the JSON response into out. Beyond Do's
// error mapping it also rejects an empty body and a 2xx body whose status
// field reports an error, so callers see every provider-signaled failure as
// a *hubspot.ResponseError.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.Get(ctx, path, query)
	if err != nil {
		return err
	}

	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return fmt.Errorf("GET %s: %w", path, hubspot.ErrEmptyResponse)
	}

	var probe struct {
		Status string `json:"status"`
	}

	err = json.Unmarshal(resp.Body, &probe)
	if err == nil && probe.Status == "error" {
		return c.responseError(path, resp)
	}

	err = json.Unmarshal(resp.Body, out)
	if err != nil {
		return fmt.Errorf("parsing %s response: %w", path, err)
	}

	return nil
}

func (c *Client) responseError(path string, resp *Response) error {
	respErr := hubspot.ParseResponseError(resp.Body)
	respErr.StatusCode = resp.StatusCode
	respErr.StatusText = http.StatusText(resp.StatusCode)
	respErr.RequestPath = path

	return respErr
}
