// Package http is the single chokepoint through which every API call is
// made. It authenticates requests, performs exactly one round trip and
// normalizes failures into the hevy error types.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/hevy-client/internal/constants"
	"github.com/fivetwenty-io/hevy-client/pkg/hevy"
)

// Request describes one API call. It lives only for the duration of Do.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is a raw API response.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
}

// Client sends authenticated requests to the API. It is read-only after
// NewClient returns and safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *retryablehttp.Client
	logger     hevy.Logger
	debug      bool
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger hevy.Logger) Option {
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

// WithTimeout sets the overall timeout of each request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(httpClient *nethttp.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// NewClient creates a client for baseURL that sends apiKey on every request.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.CheckRetry = singleAttempt
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: retryClient,
		userAgent:  constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// singleAttempt never asks for a retry; every call is one round trip.
func singleAttempt(ctx context.Context, _ *nethttp.Response, _ error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, nil
}

// Do performs the request. Non-2xx responses are returned together with a
// *hevy.AuthenticationError (401) or a *hevy.RequestError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var body interface{}

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &hevy.RequestError{Message: fmt.Sprintf("encoding request body: %v", err), Err: err}
		}

		body = data
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, &hevy.RequestError{Message: fmt.Sprintf("creating request: %v", err), Err: err}
	}

	httpReq.Header.Set("Accept", constants.ContentTypeJSON)
	httpReq.Header.Set(constants.APIKeyHeader, c.apiKey)
	httpReq.Header.Set("User-Agent", c.userAgent)

	if body != nil {
		httpReq.Header.Set("Content-Type", constants.ContentTypeJSON)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
			"query":  req.Query.Encode(),
		})
	}

	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// A canceled context can arrive together with a response.
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}

		return nil, &hevy.RequestError{
			Message: fmt.Sprintf("sending %s %s: %v", req.Method, req.Path, err),
			Err:     err,
		}
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
			"duration":    time.Since(start).String(),
		})
	}

	// A 401 only ever means the key was rejected; the body is not consulted.
	if resp.StatusCode == nethttp.StatusUnauthorized {
		return response, &hevy.AuthenticationError{}
	}

	response.Body, err = io.ReadAll(resp.Body)
	if err != nil {
		return response, &hevy.RequestError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("reading response body: %v", err),
			Err:        err,
		}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return response, nil
	}

	if c.logger != nil {
		c.logger.Warn("API request failed", map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
		})
	}

	return response, normalizeError(resp.StatusCode, response.Body)
}

// Execute performs the request and decodes a successful response body.
func (c *Client) Execute(ctx context.Context, req *Request) (hevy.Record, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	return DecodeRecord(resp)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: nethttp.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: nethttp.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: nethttp.MethodPut,
		Path:   path,
		Body:   body,
	})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: nethttp.MethodDelete,
		Path:   path,
	})
}

// DecodeRecord decodes a response body into a Record. An empty body yields
// an empty Record.
func DecodeRecord(resp *Response) (hevy.Record, error) {
	if len(strings.TrimSpace(string(resp.Body))) == 0 {
		return hevy.Record{}, nil
	}

	var record hevy.Record

	err := json.Unmarshal(resp.Body, &record)
	if err != nil {
		return nil, &hevy.RequestError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("parsing response body: %v", err),
			Err:        err,
		}
	}

	return record, nil
}
