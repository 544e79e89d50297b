package internal

import "errors"

// Recoverable error kinds. None of these are fatal: they are handled at the
// boundary where they occur and converted into user-visible advisories.
var (
	ErrStorageRead      = errors.New("storage: persisted data missing or unparsable")
	ErrStorageWrite     = errors.New("storage: write to durable storage failed")
	ErrNotFound         = errors.New("not found")
	ErrGeneration       = errors.New("suggestion generation failed")
	ErrPermissionDenied = errors.New("notification permission denied")
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}
