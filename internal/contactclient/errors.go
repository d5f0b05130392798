package contactclient

import "errors"

// ErrSendingDisabled is the cause of a KindDisabled failure
var ErrSendingDisabled = errors.New("contact sending disabled in this environment")

// Kind classifies why a submission did not reach the relay
type Kind int

const (
	// KindDisabled means sending is switched off; no request was made
	KindDisabled Kind = iota + 1
	// KindUnreachable means the relay could not be reached at all
	KindUnreachable
	// KindRejected means the relay answered with a non-2xx status
	KindRejected
	// KindUnexpected covers failures before the request left the process
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindDisabled:
		return "disabled"
	case KindUnreachable:
		return "unreachable"
	case KindRejected:
		return "rejected"
	case KindUnexpected:
		return "unexpected"
	}
	return "unknown"
}

// TransportError is the only error Send returns. Error() is the message
// meant for the person filling the form; the underlying cause stays
// reachable through errors.Unwrap for logs.
type TransportError struct {
	Kind       Kind
	Message    string
	StatusCode int
	cause      error
}

func (e *TransportError) Error() string {
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.cause
}
