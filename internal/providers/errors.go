package providers

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable is returned by decorators that wrap a nil source.
var ErrSourceUnavailable = errors.New("source unavailable")

// TransportError captures network, HTTP, and body decoding failures.
type TransportError struct {
	Resource   string
	Region     string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	msg := "transport failure fetching " + scope(e.Resource, e.Region)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error { return e.Err }

// UnexpectedResponseError is returned when the upstream envelope reports a
// non-success status, e.g. an expired cookie or throttling.
type UnexpectedResponseError struct {
	Resource string
	Region   string
	Type     string
	Value    string
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("unexpected response for %s: status type=%q value=%q", scope(e.Resource, e.Region), e.Type, e.Value)
}

// SchemaViolationError means a report row broke the upstream contract in a way
// that cannot be filtered, such as a "date" key that does not hold a date.
type SchemaViolationError struct {
	Region string
	Key    string
	Raw    string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation in %s: key %q holds %s", scope(ResourceReport, e.Region), e.Key, e.Raw)
}

// AsTransportError attempts to unwrap an error into a TransportError.
func AsTransportError(err error) (*TransportError, bool) {
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr, true
	}
	return nil, false
}

// AsUnexpectedResponse attempts to unwrap an error into an UnexpectedResponseError.
func AsUnexpectedResponse(err error) (*UnexpectedResponseError, bool) {
	var uErr *UnexpectedResponseError
	if errors.As(err, &uErr) {
		return uErr, true
	}
	return nil, false
}

// AsSchemaViolation attempts to unwrap an error into a SchemaViolationError.
func AsSchemaViolation(err error) (*SchemaViolationError, bool) {
	var sErr *SchemaViolationError
	if errors.As(err, &sErr) {
		return sErr, true
	}
	return nil, false
}

func scope(resource, region string) string {
	if resource == "" {
		resource = "resource"
	}
	if region == "" {
		return resource
	}
	return resource + " region=" + region
}
