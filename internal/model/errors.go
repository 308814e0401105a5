package model

import "errors"

var ErrNoRecord = errors.New("no record")
var ErrAlreadyExists = errors.New("entity already exists")

// ErrorType is the semantic category of a DomainError.
type ErrorType int

const (
	ErrorTypeInternal     ErrorType = iota
	ErrorTypeValidation             // a required argument is missing or malformed
	ErrorTypeNotFound               // a referenced record does not exist
	ErrorTypeCollaborator           // a read/write against an upstream service failed
	ErrorTypeAssembly               // the assembled request is not fit to be dispatched
)

type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// GetErrorType returns ErrorTypeInternal for anything that is not a DomainError.
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ErrorTypeInternal
}

func NewValidationError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeValidation, Message: message, Err: errors.Join(err...)}
}

func NewNotFoundError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeNotFound, Message: message, Err: errors.Join(err...)}
}

func NewCollaboratorError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeCollaborator, Message: message, Err: errors.Join(err...)}
}

func NewAssemblyError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeAssembly, Message: message, Err: errors.Join(err...)}
}
