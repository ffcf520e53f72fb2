//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/hevy-client/pkg/hevy"
	"github.com/fivetwenty-io/hevy-client/pkg/hevyclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	APIKey    string
	WorkoutID string
	BaseURL   string
	HevyPath  string
	Verbose   bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIKey:    os.Getenv("HEVY_API_KEY"),
		WorkoutID: os.Getenv("VALID_WORKOUT_ID"),
		BaseURL:   os.Getenv("HEVY_API"),
		HevyPath:  getHevyPath(),
		Verbose:   os.Getenv("HEVY_VERBOSE") == "true",
	}
}

// getHevyPath determines the path to the hevy binary
func getHevyPath() string {
	if path := os.Getenv("HEVY_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../hevy",
		"./hevy",
		"../hevy",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "hevy" // Fallback to PATH
}

// SkipIfMissingAPIKey skips test if no API key is configured
func (config *TestConfig) SkipIfMissingAPIKey(t *testing.T) {
	t.Helper()

	if config.APIKey == "" {
		t.Skip("HEVY_API_KEY not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips test if the hevy binary cannot be found
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.HevyPath); err != nil {
		t.Skipf("hevy binary not found at %s, skipping integration test", config.HevyPath)
	}
}

// NewClient creates a library client using apiKey against the configured API.
func (config *TestConfig) NewClient(t *testing.T, apiKey string) hevy.Client {
	t.Helper()

	client, err := hevyclient.New(&hevy.Config{
		APIKey:  apiKey,
		BaseURL: config.BaseURL,
	})
	require.NoError(t, err)

	return client
}

// Run executes a hevy command and returns output
func (config *TestConfig) Run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := exec.Command(config.HevyPath, args...)
	cmd.Env = append(os.Environ(), "HEVY_API_KEY="+config.APIKey)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if config.Verbose {
		t.Logf("Running: %s %s", config.HevyPath, strings.Join(args, " "))
	}

	err = cmd.Run()

	return stdoutBuf.String(), stderrBuf.String(), err
}

// AssertJSONOutput validates that output is valid JSON
func AssertJSONOutput(t *testing.T, output string) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}

	require.NoError(t, json.Unmarshal([]byte(output), &result), "Output should be valid JSON: %s", output)

	return result
}

// GenerateTestName creates a unique test workout title
func GenerateTestName(prefix string) string {
	return prefix + " " + time.Now().UTC().Format(time.RFC3339)
}
