package apperror

import "errors"

// Kind classifies an error so the HTTP layer can map it to a status code
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindValidation
	KindAuthorization
	KindAuthentication
	KindDependency
)

// Error carries a kind plus a human-readable message
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// Dependency wraps a failure from the underlying store or another collaborator
func Dependency(message string, err error) *Error {
	return &Error{Kind: KindDependency, Message: message, Err: err}
}

// KindOf extracts the kind from err, or KindDependency if err is not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindDependency
}

// IsNotFound reports whether err carries KindNotFound
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
