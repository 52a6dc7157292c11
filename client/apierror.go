package client

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// The request could not be sent, or no response was received (network, DNS, TLS, cancelled context).
	ErrTransport = errors.New("API request failed to send")

	// A successful response body could not be parsed in to the expected shape.
	ErrMalformedResponse = errors.New("malformed API response body")
)

// Non-successful HTTP response from the forum.
//
// When the response body was a Discourse error payload, Errors holds the individual messages and Message has them joined with ", ". Otherwise only StatusCode is set.
type APIError struct {
	StatusCode int
	Errors     []string
	ErrorType  string
	Message    string
}

func (ae *APIError) Error() string {
	if ae.StatusCode > 0 {
		if ae.ErrorType != "" && ae.Message != "" {
			return fmt.Sprintf("API request failed (HTTP %d): %s: %s", ae.StatusCode, ae.ErrorType, ae.Message)
		} else if ae.Message != "" {
			return fmt.Sprintf("API request failed (HTTP %d): %s", ae.StatusCode, ae.Message)
		}
		return fmt.Sprintf("API request failed (HTTP %d)", ae.StatusCode)
	}
	return "API request failed"
}

// Reports whether the error was built from a structured Discourse error body, as opposed to a bare status code.
func (ae *APIError) Structured() bool {
	return len(ae.Errors) > 0
}

// Error payload returned by Discourse on failures, eg: {"errors":["Title is too short"],"error_type":"invalid_parameters"}
type ErrorBody struct {
	Errors    []string `json:"errors"`
	ErrorType string   `json:"error_type,omitempty"`
}

func (eb *ErrorBody) APIError(statusCode int) error {
	return &APIError{
		StatusCode: statusCode,
		Errors:     eb.Errors,
		ErrorType:  eb.ErrorType,
		Message:    strings.Join(eb.Errors, ", "),
	}
}
