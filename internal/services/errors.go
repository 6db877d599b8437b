package services

// Kind classifies a service failure; handlers map kinds to HTTP statuses.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindUnauthorized
	KindNotFound
	KindInternal
)

// Error is the failure type every service operation returns. Message is
// caller-facing; Err keeps the underlying cause for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func errConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func errUnauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func errNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func errInternal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: cause}
}
