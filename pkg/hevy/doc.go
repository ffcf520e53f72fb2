// Package hevy defines the public surface of the Hevy API client: the
// Client and resource client interfaces, configuration, the workout create
// payload, and the error types every operation returns.
//
// Use package hevyclient to construct a Client.
//
// # Errors
//
// Every error returned by a client operation is exactly one of:
//
//   - *ValidationError: a create payload failed local validation. Fields
//     lists every violation, not just the first.
//   - *RequestError: input was rejected locally (StatusCode 0) or the API
//     rejected the request (StatusCode set, Message taken from the API's
//     "error" field or plain-text body).
//   - *AuthenticationError: the API answered 401; the API key is invalid or
//     missing.
//
// Use errors.As, or the IsValidationError / IsRequestError /
// IsAuthenticationError / IsNotFound helpers, to branch on them.
//
// # Responses
//
// Successful responses are returned as Record values, the decoded JSON
// object exactly as the API sent it.
package hevy
