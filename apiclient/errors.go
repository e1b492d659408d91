package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a request failure.
type Kind string

const (
	// KindNetwork means no response reached the client.
	KindNetwork Kind = "network"

	// KindAuth means the server rejected the session credential (401).
	KindAuth Kind = "auth"

	// KindNotFound means the requested resource does not exist (404).
	KindNotFound Kind = "not_found"

	// KindValidation means the server rejected the request payload
	// (4xx with a server-supplied message).
	KindValidation Kind = "validation"

	// KindServer means the server failed (5xx).
	KindServer Kind = "server"

	// KindUnknown covers everything else.
	KindUnknown Kind = "unknown"
)

// ErrDecode is wrapped by errors returned when a response body does not
// match the expected shape.
var ErrDecode = errors.New("unexpected response format")

// Error is a classified request failure.
type Error struct {
	// Kind is the failure category.
	Kind Kind

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// ServerMessage is the message field from the response body, if any.
	ServerMessage string

	err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.err)
	case e.ServerMessage != "":
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.ServerMessage)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s (%d)", e.Kind, e.StatusCode)
	default:
		return string(e.Kind)
	}
}

// Unwrap returns the underlying transport error, if any.
func (e *Error) Unwrap() error {
	return e.err
}

// classify maps a response status and decoded server message to a Kind.
func classify(status int, serverMessage string) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuth
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 400 && status < 500 && serverMessage != "":
		return KindValidation
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind == kind
}

// ServerMessage returns the server-supplied message from err, or "".
func ServerMessage(err error) string {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return ""
	}
	return apiErr.ServerMessage
}
