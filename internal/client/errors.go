package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrTokenFetch = errors.New("token fetch failed")
	ErrParse      = errors.New("malformed response body")
)

// HTTPError is returned when the backend answers with a non-2xx status
type HTTPError struct {
	StatusCode int
	Endpoint   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d (%s)", e.StatusCode, e.Endpoint)
}

// IsUnauthorized reports whether the backend rejected the credentials
func (e *HTTPError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}
