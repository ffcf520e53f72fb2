package http

import (
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"strings"

	"github.com/fivetwenty-io/hevy-client/pkg/hevy"
)

// normalizeError turns a non-2xx, non-401 response into a *hevy.RequestError.
// The API answers with a JSON {"error": "..."} object, plain text, or
// nothing at all, depending on the endpoint and failure.
func normalizeError(statusCode int, body []byte) error {
	text := strings.TrimSpace(string(body))

	var envelope map[string]interface{}

	err := json.Unmarshal([]byte(text), &envelope)
	if err == nil {
		message := errorFieldMessage(envelope["error"])
		if message != "" {
			return &hevy.RequestError{StatusCode: statusCode, Message: message}
		}
	}

	if text == "" {
		text = statusText(statusCode)
	}

	return &hevy.RequestError{StatusCode: statusCode, Message: text}
}

func errorFieldMessage(value interface{}) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	default:
		data, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprint(typed)
		}

		return string(data)
	}
}

func statusText(statusCode int) string {
	text := nethttp.StatusText(statusCode)
	if text == "" {
		return fmt.Sprintf("HTTP %d", statusCode)
	}

	return text
}
