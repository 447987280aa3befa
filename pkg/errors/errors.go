package errors

import "net/http"

// Kind is a stable, machine-readable error category. Handlers map kinds to
// HTTP status codes; clients can branch on them without parsing messages.
type Kind string

const (
	KindUnauthenticated  Kind = "UNAUTHENTICATED"
	KindNotFound         Kind = "NOT_FOUND"
	KindInvalidOperation Kind = "INVALID_OPERATION"
	KindBlocked          Kind = "BLOCKED"
	KindStorageFailure   Kind = "STORAGE_FAILURE"
)

// AppError is a custom error type carrying an HTTP status and a stable kind
type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func New(code int, kind Kind, message string) *AppError {
	return &AppError{Code: code, Kind: kind, Message: message}
}

// Helper constructors for the error taxonomy
func Unauthenticated(msg string) *AppError {
	return New(http.StatusUnauthorized, KindUnauthenticated, msg)
}

func NotFound(msg string) *AppError {
	return New(http.StatusNotFound, KindNotFound, msg)
}

func InvalidOperation(msg string) *AppError {
	return New(http.StatusBadRequest, KindInvalidOperation, msg)
}

func Blocked(msg string) *AppError {
	return New(http.StatusForbidden, KindBlocked, msg)
}

func Storage(msg string) *AppError {
	return New(http.StatusInternalServerError, KindStorageFailure, msg)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Kind == kind
}
