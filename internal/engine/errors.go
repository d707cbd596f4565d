// internal/engine/errors.go
package engine

import (
	"errors"
	"fmt"
	"net/http"
)

// Common fetch errors
var (
	ErrBrowserNotFound = errors.New("chrome browser not found")
	ErrTimeout         = errors.New("request timeout")
	ErrBlocked         = errors.New("request blocked by store")
	ErrNetworkError    = errors.New("network error")
)

// ErrorCode represents a specific fetch failure
type ErrorCode string

const (
	ErrCodeTimeout      ErrorCode = "TIMEOUT"
	ErrCodeBlocked      ErrorCode = "BLOCKED"
	ErrCodeStatus       ErrorCode = "HTTP_STATUS"
	ErrCodeNetworkError ErrorCode = "NETWORK_ERROR"
	ErrCodeBrowser      ErrorCode = "BROWSER"
)

// FetchError wraps a failed page fetch with the URL and, when known, the HTTP status
type FetchError struct {
	Code       ErrorCode
	URL        string
	StatusCode int
	Underlying error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s: fetch %s", e.Code, e.URL)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Underlying != nil {
		msg += ": " + e.Underlying.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *FetchError) Unwrap() error {
	return e.Underlying
}

// Is matches another *FetchError by code, or the sentinel for the code
func (e *FetchError) Is(target error) bool {
	if t, ok := target.(*FetchError); ok {
		return e.Code == t.Code
	}
	switch e.Code {
	case ErrCodeBlocked:
		return target == ErrBlocked
	case ErrCodeTimeout:
		return target == ErrTimeout
	case ErrCodeNetworkError:
		return target == ErrNetworkError
	case ErrCodeBrowser:
		return target == ErrBrowserNotFound && errors.Is(e.Underlying, ErrBrowserNotFound)
	}
	return false
}

// Temporary reports whether a later attempt may succeed. Only a missing browser is permanent.
func (e *FetchError) Temporary() bool {
	return !errors.Is(e.Underlying, ErrBrowserNotFound)
}

// GetStatusCode exposes the HTTP status for retry policies
func (e *FetchError) GetStatusCode() int {
	return e.StatusCode
}

// NewFetchError creates a new FetchError
func NewFetchError(code ErrorCode, url string, err error) *FetchError {
	return &FetchError{Code: code, URL: url, Underlying: err}
}

// StatusError classifies a non-2xx response. 403, 429 and 503 are how stores usually
// answer bots, so they are reported as blocks.
func StatusError(url string, status int) *FetchError {
	code := ErrCodeStatus
	switch status {
	case http.StatusForbidden, http.StatusTooManyRequests, http.StatusServiceUnavailable:
		code = ErrCodeBlocked
	}
	return &FetchError{
		Code:       code,
		URL:        url,
		StatusCode: status,
		Underlying: fmt.Errorf("unexpected status %d %s", status, http.StatusText(status)),
	}
}
