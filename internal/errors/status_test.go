package errors

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestIsRetryableStatusCodes(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		retryable bool
	}{
		{"too many requests", 429, true},
		{"service unavailable", 503, true},
		{"internal server error", 500, true},
		{"bad gateway", 502, true},
		{"bad request", 400, false},
		{"unauthorized", 401, false},
		{"forbidden", 403, false},
		{"not found", 404, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewStatusError(tt.status, "body")
			assert.Equal(t, tt.retryable, IsRetryable(err))
		})
	}
}

func TestIsRetryableWrappedStatusError(t *testing.T) {
	err := fmt.Errorf("search failed: %w", NewStatusError(503, ""))
	assert.True(t, IsRetryable(err))
}

func TestIsRetryableNetworkErrors(t *testing.T) {
	assert.True(t, IsRetryable(&net.DNSError{Err: "no such host", Name: "example.com"}))
	assert.True(t, IsRetryable(&net.OpError{Op: "read", Err: errors.New("connection reset by peer")}))
	assert.True(t, IsRetryable(&url.Error{Op: "Get", URL: "http://x", Err: timeoutError{}}))
}

func TestIsRetryableTerminalErrors(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(ErrNoResults))
	assert.False(t, IsRetryable(fmt.Errorf("wrapped: %w", ErrNoResults)))
	assert.False(t, IsRetryable(errors.New("decoding response: unexpected EOF")))
}

func TestStatusErrorMessage(t *testing.T) {
	err := NewStatusError(503, "Service Unavailable")
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "Service Unavailable")
}
