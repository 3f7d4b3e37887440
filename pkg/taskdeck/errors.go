package taskdeck

import (
	"errors"
	"fmt"
)

// Sentinel errors for connection-related issues.
var (
	// ErrServerNotRunning indicates the server is not reachable.
	ErrServerNotRunning = errors.New("server is not running or unreachable")
	// ErrServerUnhealthy indicates the health check failed.
	ErrServerUnhealthy = errors.New("server health check failed")
)

// ErrorCode is the machine-readable code of an API error.
type ErrorCode string

const (
	ErrCodeValidation         ErrorCode = "VALIDATION_ERROR"
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeAccountDeactivated ErrorCode = "ACCOUNT_DEACTIVATED"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeEmailExists        ErrorCode = "EMAIL_EXISTS"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeInvalidID          ErrorCode = "INVALID_ID"
	ErrCodeServer             ErrorCode = "SERVER_ERROR"
)

// Error is an error response from the taskdeck API.
type Error struct {
	StatusCode int
	Code       ErrorCode
	Message    string
	// Details lists failed validation rules, or carries the cause of a
	// server error outside production.
	Details any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// ValidationDetails returns the failed validation rules, if any.
func (e *Error) ValidationDetails() []string {
	items, ok := e.Details.([]any)
	if !ok {
		return nil
	}
	details := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			details = append(details, s)
		}
	}
	return details
}

// apiErrorResponse wraps the error in the API response format.
type apiErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details,omitempty"`
	} `json:"error"`
}

// IsValidation returns true if the request was rejected by validation.
func IsValidation(err error) bool {
	return hasErrorCode(err, ErrCodeValidation)
}

// IsUnauthorized returns true if the call needs a signed-in session.
func IsUnauthorized(err error) bool {
	return hasErrorCode(err, ErrCodeUnauthorized)
}

// IsInvalidCredentials returns true if login failed on email or password.
func IsInvalidCredentials(err error) bool {
	return hasErrorCode(err, ErrCodeInvalidCredentials)
}

// IsAccountDeactivated returns true if the account has been deactivated.
func IsAccountDeactivated(err error) bool {
	return hasErrorCode(err, ErrCodeAccountDeactivated)
}

// IsEmailExists returns true if the email belongs to another account.
func IsEmailExists(err error) bool {
	return hasErrorCode(err, ErrCodeEmailExists)
}

// IsNotFound returns true if the resource does not exist for this user.
func IsNotFound(err error) bool {
	return hasErrorCode(err, ErrCodeNotFound)
}

// IsInvalidID returns true if the task id was rejected.
func IsInvalidID(err error) bool {
	return hasErrorCode(err, ErrCodeInvalidID)
}

// IsServerNotRunning returns true if the error indicates the server is not running.
func IsServerNotRunning(err error) bool {
	return errors.Is(err, ErrServerNotRunning)
}

// IsServerUnhealthy returns true if the error indicates the server is unhealthy.
func IsServerUnhealthy(err error) bool {
	return errors.Is(err, ErrServerUnhealthy)
}

// hasErrorCode checks if the error has the given error code.
func hasErrorCode(err error, code ErrorCode) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}
