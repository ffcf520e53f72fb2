package hevy

import (
	"context"
	"net/http"
	"time"
)

// WorkoutsClient provides access to the workouts resource.
type WorkoutsClient interface {
	// List returns one page of workouts. page starts at 1 and pageSize
	// must be between 1 and MaxPageSize.
	List(ctx context.Context, page, pageSize int) (Record, error)
	// Count returns the total number of workouts on the account.
	Count(ctx context.Context) (int, error)
	// Get returns a single workout. Surrounding whitespace in id is ignored.
	Get(ctx context.Context, id string) (Record, error)
	// Create validates workout and, if valid, creates it.
	Create(ctx context.Context, workout *WorkoutCreate) (Record, error)
}

// Client is the entry point to the Hevy API. Every resource client it
// returns shares the credential the Client was built with.
type Client interface {
	Workouts() WorkoutsClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a hevy.Client.
//
// # Authentication
//
// APIKey is sent on every request in the "api-key" header. It is not
// checked locally: an empty or revoked key is reported by the API as a 401,
// which surfaces as *AuthenticationError.
//
// # Timeouts and retries
//
// Per-request timeouts should be controlled via the context passed to
// client methods; HTTPTimeout bounds every request regardless of context.
// The client never retries. Each call makes at most one request.
type Config struct {
	// APIKey: the Hevy API key (Hevy Pro → Settings → Developer).
	APIKey string

	// BaseURL: API root, "https://api.hevy.com" when empty. hevyclient.New
	// trims a trailing slash and adds "https://" if no scheme is present.
	BaseURL string

	// HTTPTimeout: overall timeout per request. Defaults to 30s.
	HTTPTimeout time.Duration
	// HTTPClient: optional underlying HTTP client (custom transport, proxy,
	// TLS). HTTPTimeout is ignored when set.
	HTTPClient *http.Client
	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
}
