package client

import (
	"strings"

	"github.com/fivetwenty-io/hevy-client/internal/constants"
	"github.com/fivetwenty-io/hevy-client/internal/http"
	"github.com/fivetwenty-io/hevy-client/internal/schema"
	"github.com/fivetwenty-io/hevy-client/pkg/hevy"
)

// Client implements the hevy.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     hevy.Logger

	// Resource clients
	workouts *WorkoutsClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *hevy.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	return httpOpts
}

// New creates a new Hevy API client. The API key is captured once and shared
// by every resource client.
func New(config *hevy.Config) (*Client, error) {
	if config == nil {
		return nil, hevy.ErrConfigRequired
	}

	baseURL := NormalizeBaseURL(config.BaseURL)

	httpClient := http.NewClient(baseURL, config.APIKey, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// NormalizeBaseURL applies the default API root, adds an https scheme when
// none is given and strips trailing slashes.
func NormalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return constants.DefaultBaseURL
	}

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return strings.TrimRight(baseURL, "/")
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Workouts implements hevy.Client.Workouts.
func (c *Client) Workouts() hevy.WorkoutsClient {
	return c.workouts
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.workouts = NewWorkoutsClient(c.httpClient, schema.New())
}
