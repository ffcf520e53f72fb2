package commands

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// isolateEnvironment points HOME at a temporary directory and clears any
// HEVY_ overrides so tests never see the developer's configuration.
func isolateEnvironment(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("HEVY_API_KEY", "")
	t.Setenv("HEVY_API", "")
	t.Setenv("HEVY_OUTPUT", "")

	viper.Reset()
	t.Cleanup(viper.Reset)

	return filepath.Join(home, ".hevy", "config.yml")
}

// executeCommand runs the hevy command tree with args and returns stdout.
func executeCommand(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	viper.Reset()

	rootCmd := NewRootCommand("1.2.3", "abc123", "2024-08-14")

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	if stdin != nil {
		rootCmd.SetIn(stdin)
	}

	err := rootCmd.Execute()

	return out.String(), err
}

type capturedRequest struct {
	method string
	path   string
	query  string
	apiKey string
	body   []byte
}

// apiStub is a fake API answering every request with the same response.
type apiStub struct {
	*httptest.Server

	mu       sync.Mutex
	requests []capturedRequest
}

func newAPIStub(t *testing.T, statusCode int, body string) *apiStub {
	t.Helper()

	stub := &apiStub{}
	stub.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		data, _ := io.ReadAll(request.Body)

		stub.mu.Lock()
		stub.requests = append(stub.requests, capturedRequest{
			method: request.Method,
			path:   request.URL.Path,
			query:  request.URL.RawQuery,
			apiKey: request.Header.Get("api-key"),
			body:   data,
		})
		stub.mu.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(statusCode)
		_, _ = writer.Write([]byte(body))
	}))
	t.Cleanup(stub.Close)

	return stub
}

func (s *apiStub) captured() []capturedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]capturedRequest(nil), s.requests...)
}
