package domain

import "fmt"

// ErrorCode represents a domain error code.
type ErrorCode string

const (
	ErrCodeValidation         ErrorCode = "VALIDATION_ERROR"
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeAccountDeactivated ErrorCode = "ACCOUNT_DEACTIVATED"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeEmailExists        ErrorCode = "EMAIL_EXISTS"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeInvalidID          ErrorCode = "INVALID_ID"

	// Catch-all codes, one per operation family.
	ErrCodeServer ErrorCode = "SERVER_ERROR"
	ErrCodeFetch  ErrorCode = "FETCH_ERROR"
	ErrCodeCreate ErrorCode = "CREATE_ERROR"
	ErrCodeUpdate ErrorCode = "UPDATE_ERROR"
	ErrCodeDelete ErrorCode = "DELETE_ERROR"
)

// DomainError represents an error in the domain layer with context.
type DomainError struct {
	Code    ErrorCode
	Message string
	Details any
	// Err is the underlying cause of an internal error. It is never shown to
	// clients in production.
	Err error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Internal reports whether the error is one of the catch-all 500 codes.
func (e *DomainError) Internal() bool {
	switch e.Code {
	case ErrCodeServer, ErrCodeFetch, ErrCodeCreate, ErrCodeUpdate, ErrCodeDelete:
		return true
	}
	return false
}

// NewValidationError creates a validation error listing every failed rule.
func NewValidationError(details []string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: "Validation failed",
		Details: details,
	}
}

// NewValidationMessage creates a validation error with a single message and no details.
func NewValidationMessage(message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// NewUnauthorizedError creates an unauthorized error.
func NewUnauthorizedError(message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeUnauthorized,
		Message: message,
	}
}

// NewInvalidCredentialsError creates an invalid credentials error. It never
// says whether the email or the password was wrong.
func NewInvalidCredentialsError() *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidCredentials,
		Message: "Invalid email or password",
	}
}

// NewAccountDeactivatedError creates an account deactivated error.
func NewAccountDeactivatedError() *DomainError {
	return &DomainError{
		Code:    ErrCodeAccountDeactivated,
		Message: "Account is deactivated",
	}
}

// NewEmailExistsError creates an email exists error.
func NewEmailExistsError(message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeEmailExists,
		Message: message,
	}
}

// NewTaskNotFoundError creates a task not found error. The message is the
// same whether the task is missing or owned by someone else.
func NewTaskNotFoundError() *DomainError {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: "Task not found",
	}
}

// NewInvalidIDError creates an invalid id error.
func NewInvalidIDError() *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidID,
		Message: "Invalid task ID",
	}
}

// NewInternalError creates an internal error with the given catch-all code.
func NewInternalError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewUserNotFoundError creates a user not found error.
func NewUserNotFoundError() *DomainError {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: "User not found",
	}
}
