package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable    = errors.New("backend unavailable")
	ErrAuthentication = errors.New("invalid username or password")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrValidation     = errors.New("rejected by backend")
	ErrNotFound       = errors.New("not found")
	ErrServer         = errors.New("backend error")
)

// Error describes a non-2xx answer. errors.Is matches it against the
// sentinel chosen for its status code.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	RequestID  string

	kind error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, msg)
}

func (e *Error) Unwrap() error { return e.kind }

// mapStatus picks the sentinel for a failed response. A 401 from /login
// means bad credentials rather than a missing or stale token.
func mapStatus(path string, code int) error {
	switch code {
	case http.StatusUnauthorized:
		if path == pathLogin {
			return ErrAuthentication
		}
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return ErrServer
	}
}
