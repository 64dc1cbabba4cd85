package agent

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure kinds crossing component
// boundaries. Every agent, dispatcher and scoring failure is one of these.
type ErrorKind string

const (
	KindAgentNotFound          ErrorKind = "agent_not_found"
	KindInvalidResponse        ErrorKind = "invalid_response"
	KindProcessingError        ErrorKind = "processing_error"
	KindNetworkError           ErrorKind = "network_error"
	KindAuthenticationError    ErrorKind = "authentication_error"
	KindRateLimitExceeded      ErrorKind = "rate_limit_exceeded"
	KindContentPolicyViolation ErrorKind = "content_policy_violation"
	KindInsufficientData       ErrorKind = "insufficient_data"
)

// Error is the taxonomy error carried by every failed Result. Kind is stable
// and localizable; Detail is for operators, not end users.
type Error struct {
	Kind   ErrorKind `json:"kind"`
	Detail string    `json:"detail,omitempty"`
	cause  error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewError(kind ErrorKind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func WrapError(kind ErrorKind, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, cause: cause}
}

// AsError normalizes any failure into a taxonomy error. Untyped failures
// become processing errors so nothing opaque crosses a boundary.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return WrapError(KindProcessingError, err.Error(), err)
}

// KindOf extracts the taxonomy kind from err, if it carries one.
func KindOf(err error) (ErrorKind, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return "", false
}

// IsKind reports whether err is a taxonomy error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
