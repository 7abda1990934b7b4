package builder

import "errors"

// Kind classifies a failed orchestration call so callers can branch
// without parsing message text.
type Kind string

const (
	KindMissingConfiguration Kind = "missing_configuration"
	KindInvalidInput         Kind = "invalid_input"
	KindPayloadTooLarge      Kind = "payload_too_large"
	KindUpstreamError        Kind = "upstream_error"
	KindUnexpectedResponse   Kind = "unexpected_response"
)

// Error is the terminal outcome of a failed call. Message is safe to
// show to the user; Err keeps the wrapped cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
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

// KindOf extracts the failure kind from any error returned by this
// package. Unclassified errors report as upstream failures.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUpstreamError
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}
