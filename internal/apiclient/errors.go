package apiclient

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindTransport covers unreachable hosts and non-2xx responses.
	KindTransport Kind = iota + 1
	// KindApplication is a 2xx response whose envelope reports success=false.
	KindApplication
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindApplication:
		return "application"
	default:
		return "unknown"
	}
}

var (
	ErrTransport   = errors.New("transport failure")
	ErrApplication = errors.New("application failure")
	ErrDecode      = errors.New("failed to decode response")
)

// Error is returned by every remote call that did not succeed. Message is
// what the dashboard shows: a generic status line for transport failures
// and the server's own text for application failures.
type Error struct {
	Kind       Kind
	Op         string
	StatusCode int
	Message    string
	// Detail is the server-supplied explanation of a non-2xx response, if any.
	Detail string
	Err    error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrApplication:
		return e.Kind == KindApplication
	}
	return false
}

func httpStatusError(op string, status int, detail string) *Error {
	return &Error{
		Kind:       KindTransport,
		Op:         op,
		StatusCode: status,
		Message:    fmt.Sprintf("HTTP error! status: %d", status),
		Detail:     detail,
	}
}

// StatusCode extracts the HTTP status of a failed call, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Message returns the text to surface for err, falling back to fallback
// when err carries none.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
