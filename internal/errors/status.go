// Package errors provides the error types shared between the Google
// Books client and the resolver's retry logic.
package errors

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

// ErrNoResults signals a well-formed API response with an empty result
// set. It terminates the retry loop immediately: asking the same
// question again will not produce different books.
var ErrNoResults = errors.New("no results found")

// StatusError represents a non-2xx HTTP response from the metadata API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Body)
}

// NewStatusError creates a StatusError for the given status code and
// response body snippet.
func NewStatusError(statusCode int, body string) *StatusError {
	return &StatusError{StatusCode: statusCode, Body: body}
}

// IsRetryable reports whether err is worth retrying with backoff:
// HTTP 429, 503 or any 5xx, and transient network failures (connection
// reset, timeout, DNS failure). Everything else - client errors, empty
// result sets, malformed payloads - fails fast.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNoResults) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusTooManyRequests:
			return true
		case statusErr.StatusCode >= http.StatusInternalServerError:
			return true
		default:
			return false
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout() || urlErr.Temporary()
	}

	return false
}
