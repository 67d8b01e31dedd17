package studioclient

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// HTTPError is returned for any non-2xx answer of the studio backend.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("studioclient: %s %s failed with status %s", e.Method, e.Path, e.Status)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not
// (or does not wrap) an *HTTPError.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether the backend rejected the session token.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}
