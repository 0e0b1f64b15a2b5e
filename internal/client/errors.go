package client

import (
	"fmt"
	"strings"
)

// ErrorClass categorizes a failed request for display purposes. The
// class is assigned only after all retries are exhausted and never
// influences retry behavior.
type ErrorClass string

const (
	ErrorClassTimeout    ErrorClass = "timeout"
	ErrorClassConnection ErrorClass = "connection"
	ErrorClassGeneric    ErrorClass = "generic"
)

// RequestError is returned when a request fails after exhausting its
// retry budget.
type RequestError struct {
	URL      string
	Class    ErrorClass
	Attempts int
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %s failed after %d attempt(s) [%s]: %v", e.URL, e.Attempts, e.Class, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// classify maps an exhausted error onto a display class by message
// inspection, mirroring how the original surfaced failures to users.
func classify(err error) ErrorClass {
	if err == nil {
		return ErrorClassGeneric
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return ErrorClassTimeout
	case strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "network is unreachable"):
		return ErrorClassConnection
	default:
		return ErrorClassGeneric
	}
}
