package adminapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"dancerfit/admin-dashboard/internal/submission"
)

var (
	// ErrTransport wraps failures to reach the remote API at all.
	ErrTransport = errors.New("remote api unreachable")
	// ErrDecode is returned when a 2xx response body can't be read.
	ErrDecode = errors.New("unexpected remote api response")
)

// Error is a non-2xx response from the remote API. Message holds the
// server's "message" field when the body had one.
type Error struct {
	Status  int
	Message string
	Body    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote api: %d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
	}
	return fmt.Sprintf("remote api: %d %s", e.Status, http.StatusText(e.Status))
}

// Unauthorized reports whether the remote token was rejected.
func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// UserMessage picks what to show an admin: a validation message, the
// server's own message verbatim, or fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var verr *submission.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	return fallback
}
