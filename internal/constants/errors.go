package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIKeyConfigured = errors.New("no API key configured, use 'hevy config set-api-key' or set HEVY_API_KEY")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrEmptyAPIKey        = errors.New("API key must not be empty")
)

// Input errors.
var (
	ErrWorkoutFileRequired   = errors.New("--file is required")
	ErrUnsupportedFileFormat = errors.New("unsupported file format, expected .json, .yaml or .yml")
	ErrUnsupportedOutput     = errors.New("unsupported output format")
	ErrTooManyPages          = errors.New("too many pages requested")
)
