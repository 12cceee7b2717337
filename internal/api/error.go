// file: internal/api/error.go
package api

import (
	"errors"
	"fmt"
)

// Error is a failed backend call. StatusCode 0 means the request never
// produced an HTTP response (network or transport failure). Body holds
// the raw response text so callers can parse field-level errors out of
// validation failures.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("api: transport failure: %s", e.Body)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Body)
}

// StatusOf returns the HTTP status carried by err, or -1 when err is
// not an API error.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return -1
}

// BodyOf returns the raw response body carried by err, or "" when err
// is not an API error.
func BodyOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Body
	}
	return ""
}
