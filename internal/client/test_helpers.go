package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/hevy-client/pkg/hevy"
)

// RecordedRequest is a request captured by a TestServer.
type RecordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	APIKey string
	Body   []byte
}

// TestServer is an httptest server that records every request it receives
// and answers with a fixed status and body.
type TestServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewTestServer starts a server that responds with statusCode and body. A nil
// body writes nothing; a string body is written verbatim; anything else is
// JSON encoded.
func NewTestServer(t *testing.T, statusCode int, body interface{}) *TestServer {
	t.Helper()

	testServer := &TestServer{}
	testServer.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		data, err := io.ReadAll(request.Body)
		require.NoError(t, err)

		testServer.mu.Lock()
		testServer.requests = append(testServer.requests, RecordedRequest{
			Method: request.Method,
			Path:   request.URL.EscapedPath(),
			Query:  request.URL.Query(),
			APIKey: request.Header.Get("api-key"),
			Body:   data,
		})
		testServer.mu.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(statusCode)

		switch payload := body.(type) {
		case nil:
		case string:
			_, _ = writer.Write([]byte(payload))
		default:
			_ = json.NewEncoder(writer).Encode(payload)
		}
	}))
	t.Cleanup(testServer.Close)

	return testServer
}

// Requests returns a copy of the requests received so far.
func (s *TestServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]RecordedRequest(nil), s.requests...)
}

// NewTestClient creates a client pointed at baseURL using apiKey.
func NewTestClient(t *testing.T, baseURL, apiKey string) *Client {
	t.Helper()

	client, err := New(&hevy.Config{APIKey: apiKey, BaseURL: baseURL})
	require.NoError(t, err)

	return client
}
