package apperr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

type Kind string

const (
	KindTransport       Kind = "transport"
	KindInvalidResponse Kind = "invalid_response"
	KindTimeout         Kind = "timeout"
	KindNotFound        Kind = "not_found"
	KindUnknown         Kind = "unknown"
)

// Error is a classified failure from an outbound call or a store lookup.
// Op names the operation that failed, e.g. "gemini generate".
type Error struct {
	Kind   Kind
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Status != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Transport(op string, err error) *Error {
	return &Error{Kind: KindTransport, Op: op, Err: stripURL(err)}
}

func TransportStatus(op string, status int, detail string) *Error {
	var err error
	if detail != "" {
		err = errors.New(detail)
	}
	return &Error{Kind: KindTransport, Op: op, Status: status, Err: err}
}

func InvalidResponse(op string, err error) *Error {
	return &Error{Kind: KindInvalidResponse, Op: op, Err: err}
}

func Timeout(op string, err error) *Error {
	return &Error{Kind: KindTimeout, Op: op, Err: stripURL(err)}
}

func NotFound(op string, id int64) *Error {
	return &Error{Kind: KindNotFound, Op: op, Err: fmt.Errorf("id %d not found", id)}
}

// FromCall classifies an error returned by an HTTP round trip. Deadline and
// net timeouts become KindTimeout, everything else KindTransport.
func FromCall(op string, err error) *Error {
	if IsTimeout(err) {
		return Timeout(op, err)
	}
	return Transport(op, err)
}

func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if IsTimeout(err) {
		return KindTimeout
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// stripURL drops the request URL from *url.Error so query string credentials
// never reach logs or responses.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s request: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
