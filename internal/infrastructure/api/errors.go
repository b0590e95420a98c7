package api

import (
	"errors"
	"net/http"
)

// ErrorKind classifies a Plaid client failure
type ErrorKind string

const (
	// ConfigurationError is returned at construction; no request was made
	ConfigurationError ErrorKind = "configuration_error"
	// APIError means Plaid answered, but not with a 200 carrying the expected field
	APIError ErrorKind = "api_error"
	// TransportError means no usable response was received
	TransportError ErrorKind = "transport_error"
)

// Response is a completed Plaid HTTP exchange
type Response struct {
	StatusCode int
	RawBody    string
	// Body is nil when the payload is not a JSON object
	Body map[string]interface{}
}

// Error is the single failure type returned by Client
type Error struct {
	Kind     ErrorKind
	Response *Response
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code is the HTTP status of the failed response, or 500 when there is none
func (e *Error) Code() int {
	if e.Response != nil {
		return e.Response.StatusCode
	}
	return http.StatusInternalServerError
}

func isKind(err error, kind ErrorKind) bool {
	var plaidErr *Error
	return errors.As(err, &plaidErr) && plaidErr.Kind == kind
}

func IsConfigurationError(err error) bool { return isKind(err, ConfigurationError) }

func IsAPIError(err error) bool { return isKind(err, APIError) }

func IsTransportError(err error) bool { return isKind(err, TransportError) }
