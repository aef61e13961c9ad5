package usecase

import "errors"

const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeStore        = "STORE_ERROR"
)

// DomainError is a rejection the caller can act on (bad input, unknown
// user). Message is safe to return to the client as is.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError wraps a store or infrastructure failure. Message carries
// the raw driver message, which the HTTP layer surfaces verbatim.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func unauthorized(msg string) error {
	return &DomainError{Code: CodeUnauthorized, Message: msg}
}

func validationFailed(msg string) error {
	return &DomainError{Code: CodeValidation, Message: msg}
}

func storeFailure(err error) error {
	return &TechnicalError{Code: CodeStore, Message: err.Error(), Err: err}
}
