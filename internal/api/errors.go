package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// Kind groups client failures so callers can tell a dead backend apart from
// one that rejected the payload.
type Kind int

const (
	KindNone Kind = iota
	KindTransport
	KindTimeout
	KindValidation
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Op      string
	Path    string
	Timeout bool
	Refused bool
	Err     error
}

func (e *TransportError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("%s %s: timed out: %v", e.Op, e.Path, e.Err)
	case e.Refused:
		return fmt.Sprintf("%s %s: connection refused", e.Op, e.Path)
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError is an application level rejection: EC is not 0/"OK".
// Details carries DT, which some endpoints fill with per-field messages.
type ValidationError struct {
	Path    string
	Status  int
	Code    string
	Message string
	Details any
}

func (e *ValidationError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (EC=%s)", e.Path, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// UnknownError covers responses that are not a decodable envelope.
type UnknownError struct {
	Path   string
	Status int
	Body   string
}

func (e *UnknownError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("%s: unexpected response (status %d): %s", e.Path, e.Status, body)
}

// Classify maps an error returned by Client to its Kind.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	var te *TransportError
	if errors.As(err, &te) {
		if te.Timeout {
			return KindTimeout
		}
		return KindTransport
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}
	if isTimeout(err) {
		return KindTimeout
	}
	return KindUnknown
}

// Message returns the server supplied message when there is one, else err.Error().
func Message(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) && ve.Message != "" {
		return ve.Message
	}
	return err.Error()
}

// IsRefused reports whether err is a refused connection.
func IsRefused(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Refused
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Status
	}
	var ue *UnknownError
	if errors.As(err, &ue) {
		return ue.Status
	}
	return 0
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isRefused(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED)
}
