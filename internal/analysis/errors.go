package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind categorizes analysis failures
type ErrorKind string

const (
	// KindRequestFailed indicates a non-2xx response or a transport failure
	KindRequestFailed ErrorKind = "request_failed"

	// KindMalformedResponse indicates a 2xx body that violates the response schema
	KindMalformedResponse ErrorKind = "malformed_response"

	// KindConfiguration indicates an unusable client configuration
	KindConfiguration ErrorKind = "configuration"
)

// Kind sentinels for errors.Is
var (
	ErrRequestFailed     = &kindError{kind: KindRequestFailed}
	ErrMalformedResponse = &kindError{kind: KindMalformedResponse}
	ErrConfiguration     = &kindError{kind: KindConfiguration}
)

type kindError struct {
	kind ErrorKind
}

func (e *kindError) Error() string { return string(e.kind) }

// RequestFailedError is returned when the service answers with a non-success
// status or cannot be reached. Status is 0 for transport failures.
type RequestFailedError struct {
	Status    int    `json:"status,omitempty"`
	Body      string `json:"body,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Cause     error  `json:"-"`
}

// Error implements the error interface
func (e *RequestFailedError) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("type=%s", KindRequestFailed))
	if e.Status > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.Status))
	}
	if e.Body != "" {
		parts = append(parts, fmt.Sprintf("message=%s", strings.TrimSpace(e.Body)))
	}
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying transport error
func (e *RequestFailedError) Unwrap() error {
	return e.Cause
}

// Is matches the ErrRequestFailed sentinel
func (e *RequestFailedError) Is(target error) bool {
	return target == ErrRequestFailed
}

// MalformedResponseError is returned when a success body does not match the
// eligibility schema. Index is -1 for document-level problems.
type MalformedResponseError struct {
	Index int    `json:"index"`
	Field string `json:"field"`
	Value string `json:"value,omitempty"`
	Cause error  `json:"-"`
}

// Error implements the error interface
func (e *MalformedResponseError) Error() string {
	msg := fmt.Sprintf("type=%s: field=%s", KindMalformedResponse, e.Field)
	if e.Index >= 0 {
		msg = fmt.Sprintf("type=%s: item=%d: field=%s", KindMalformedResponse, e.Index, e.Field)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(": unexpected value %q", e.Value)
	}
	if e.Cause != nil {
		msg += ": cause=" + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the decode error, if any
func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// Is matches the ErrMalformedResponse sentinel
func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

// ConfigurationError represents an invalid client setting
type ConfigurationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for field '%s': %s", e.Field, e.Message)
}

// Is matches the ErrConfiguration sentinel
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(field, message string) *ConfigurationError {
	return &ConfigurationError{Field: field, Message: message}
}

// IsRequestFailed checks if an error is a request failure
func IsRequestFailed(err error) bool {
	return errors.Is(err, ErrRequestFailed)
}

// IsMalformedResponse checks if an error is a schema violation
func IsMalformedResponse(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}

// KindOf returns the kind of an analysis error, or "" for foreign errors
func KindOf(err error) ErrorKind {
	switch {
	case IsRequestFailed(err):
		return KindRequestFailed
	case IsMalformedResponse(err):
		return KindMalformedResponse
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	default:
		return ""
	}
}
