package client

import (
	"errors"
	"fmt"
)

// ErrScanInFlight is returned when a submission with the same idempotency
// key (content hash or normalized URL) has not completed yet.
var ErrScanInFlight = errors.New("a scan for this target is already in flight")

// ValidationError reports bad local input; no network call was attempted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// TransportError reports a network-level failure (DNS, connect, timeout).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServiceError reports a non-2xx response or a payload-level error field.
type ServiceError struct {
	Status int
	Msg    string
}

func (e *ServiceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("service returned status %d: %s", e.Status, e.Msg)
	}
	return e.Msg
}
