package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API endpoint and wire contract.
const (
	// DefaultBaseURL is the Hevy public API root.
	DefaultBaseURL = "https://api.hevy.com"

	// WorkoutsPath is the workouts collection endpoint.
	WorkoutsPath = "/v1/workouts"

	// WorkoutsCountPath is the workout count endpoint.
	WorkoutsCountPath = "/v1/workouts/count"

	// WorkoutEnvelopeKey wraps the payload of a workout create request.
	WorkoutEnvelopeKey = "workout"

	// WorkoutCountField is the count field of the count response.
	WorkoutCountField = "workout_count"

	// PageParam and PageSizeParam are the list query parameters.
	PageParam     = "page"
	PageSizeParam = "pageSize"
)

// HTTP headers.
const (
	// APIKeyHeader carries the credential on every request.
	APIKeyHeader = "api-key"

	// ContentTypeJSON is sent as Accept, and as Content-Type when a body is present.
	ContentTypeJSON = "application/json"

	// DefaultUserAgent identifies this client.
	DefaultUserAgent = "hevy-client-go/1.0"
)

// Pagination bounds.
const (
	// MinPage is the first page number.
	MinPage = 1

	// MinPageSize is the smallest page size.
	MinPageSize = 1

	// MaxPageSize mirrors the server-side page size ceiling.
	MaxPageSize = 10

	// DefaultPageSize is used by the CLI when --page-size is not given.
	DefaultPageSize = 5

	// MaxConcurrentPages bounds in-flight list requests when the CLI fetches
	// several pages.
	MaxConcurrentPages = 4

	// MaxPages caps how many pages one CLI list call may fetch.
	MaxPages = 50
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Format constants.
const (
	// FormatJSON selects JSON output.
	FormatJSON = "json"

	// FormatYAML selects YAML output.
	FormatYAML = "yaml"

	// FormatTable selects table output.
	FormatTable = "table"
)

// UI and display constants.
const (
	// NotAvailable is shown for missing values.
	NotAvailable = "N/A"

	// MaskedSecret replaces secrets in output.
	MaskedSecret = "***"

	// VisibleKeySuffix is how many trailing API key characters stay visible when masked.
	VisibleKeySuffix = 4
)

// CLI configuration.
const (
	// ConfigDirName is the per-user configuration directory under $HOME.
	ConfigDirName = ".hevy"

	// ConfigFileName is the configuration file inside ConfigDirName.
	ConfigFileName = "config.yml"

	// EnvPrefix prefixes environment overrides, e.g. HEVY_API_KEY.
	EnvPrefix = "HEVY"

	// ConfigSetArgumentCount is the argument count of "config set".
	ConfigSetArgumentCount = 2
)
