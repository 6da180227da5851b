package cards

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed card lookup
type ErrorKind string

const (
	KindNone       ErrorKind = ""
	KindNotFound   ErrorKind = "not_found"
	KindTransient  ErrorKind = "transient"
	KindUnexpected ErrorKind = "unexpected"
)

// FetchError is returned by the client for every failed lookup.
// Status is 0 when no HTTP response was received.
type FetchError struct {
	Kind   ErrorKind
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("card lookup failed (%s, status %d): %v", e.Kind, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("card lookup failed (%s, status %d)", e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("card lookup failed (%s): %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("card lookup failed (%s)", e.Kind)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ClassifyStatus maps a non-success HTTP status onto an ErrorKind.
// 598 and 599 are the network read/connect timeout codes some proxies emit.
func ClassifyStatus(status int) ErrorKind {
	switch status {
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusTooManyRequests, http.StatusInternalServerError, 598, 599:
		return KindTransient
	default:
		return KindUnexpected
	}
}

// KindOf extracts the ErrorKind of err. Errors that did not come from the
// client are Unexpected.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnexpected
}

// StatusOf returns the HTTP status carried by err, or 0
func StatusOf(err error) int {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Status
	}
	return 0
}
