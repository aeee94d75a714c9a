package types

import "fmt"

// CustomError is the error shape every handler and service returns for
// client-visible failures. Code is the HTTP status the central error
// handler should emit.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// NewValidationError reports a missing or malformed required field (400).
func NewValidationError(message string) *CustomError {
	return &CustomError{Code: 400, Message: message, Type: "validation"}
}

// NewAuthError reports missing or invalid credentials or token (401).
func NewAuthError(message string) *CustomError {
	return &CustomError{Code: 401, Message: message, Type: "auth"}
}

// NewNotFoundError reports an absent resource. Rows owned by another user
// produce the same error so existence never leaks across tenants.
func NewNotFoundError(message string) *CustomError {
	return &CustomError{Code: 404, Message: message, Type: "not_found"}
}

// NewConflictError reports a duplicate unique field, e.g. email.
func NewConflictError(message string) *CustomError {
	return &CustomError{Code: 400, Message: message, Type: "conflict"}
}
