// Package hevyclient provides the main entry point for creating Hevy API clients
package hevyclient

import (
	"fmt"

	"github.com/fivetwenty-io/hevy-client/internal/client"
	"github.com/fivetwenty-io/hevy-client/pkg/hevy"
)

// New creates a new Hevy API client.
func New(config *hevy.Config) (hevy.Client, error) {
	if config == nil {
		return nil, hevy.ErrConfigRequired
	}

	// Use the internal client implementation
	client, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// NewWithAPIKey creates a new client for the public API using apiKey.
func NewWithAPIKey(apiKey string) (hevy.Client, error) {
	return New(&hevy.Config{
		APIKey: apiKey,
	})
}

// NewWithEndpoint creates a new client for a custom API root, such as a
// proxy or a local stub.
func NewWithEndpoint(endpoint, apiKey string) (hevy.Client, error) {
	return New(&hevy.Config{
		APIKey:  apiKey,
		BaseURL: endpoint,
	})
}
