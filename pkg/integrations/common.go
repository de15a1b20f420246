package integrations

import (
	"errors"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single registry request, including reading the body.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a package or resource doesn't exist in the registry.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, non-2xx responses).
	ErrNetwork = errors.New("network error")

	// ErrDecode is returned when a response body is not the JSON document expected.
	ErrDecode = errors.New("decode error")
)

// NewHTTPClient creates an HTTP client with the given timeout for registry requests.
// A non-positive timeout selects [DefaultTimeout].
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
