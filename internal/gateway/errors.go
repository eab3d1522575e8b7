package gateway

import (
	"errors"
	"fmt"

	"github.com/neexbeast/weather-gateway/internal/weatherapi"
)

// Kind is the error class surfaced to callers.
type Kind int

const (
	// KindInternal covers network failures, malformed payloads and anything else
	// not classified below.
	KindInternal Kind = iota
	// KindBadRequest means upstream answered with a non-200 status.
	KindBadRequest
	// KindTimeout means upstream did not answer within the timeout.
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindTimeout:
		return "timeout"
	default:
		return "internal"
	}
}

// Op names the gateway operation that failed.
type Op string

const (
	OpCurrent  Op = "current"
	OpForecast Op = "forecast"
)

// ErrMalformedPayload is wrapped when a required block is missing from an
// upstream 200 response.
var ErrMalformedPayload = errors.New("malformed upstream payload")

// Error is returned by every failing Service operation.
type Error struct {
	Kind  Kind
	Op    Op
	Query string
	// Message is the upstream error text for KindBadRequest and the captured
	// failure description for KindInternal.
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %q: %s: %s", e.Op, e.Query, e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return KindInternal
}

// classify maps an upstream or mapping failure to a gateway Error.
func classify(op Op, query string, err error) *Error {
	var statusErr *weatherapi.StatusError
	switch {
	case errors.As(err, &statusErr):
		return &Error{Kind: KindBadRequest, Op: op, Query: query, Message: statusErr.Message, Err: err}
	case errors.Is(err, weatherapi.ErrTimeout):
		return &Error{Kind: KindTimeout, Op: op, Query: query, Message: "request timeout", Err: err}
	default:
		return &Error{Kind: KindInternal, Op: op, Query: query, Message: err.Error(), Err: err}
	}
}
