// Package errors provides error code definitions for LuxShot.
package errors

import "fmt"

// ErrorCode identifies a failure class across the capture pipeline.
type ErrorCode string

const (
	// General errors
	ErrInternal ErrorCode = "INTERNAL_ERROR"
	ErrInvalid  ErrorCode = "INVALID_INPUT"
	ErrNotFound ErrorCode = "NOT_FOUND"

	// Capture errors
	ErrCaptureCancelled ErrorCode = "CAPTURE_CANCELLED"
	ErrCaptureLaunch    ErrorCode = "CAPTURE_LAUNCH_FAILED"
	ErrInvalidImageData ErrorCode = "INVALID_IMAGE_DATA"

	// Recognition errors
	ErrTextRecognition ErrorCode = "TEXT_RECOGNITION_FAILED"
	ErrCodeDetection   ErrorCode = "CODE_DETECTION_FAILED"

	// History errors
	ErrHistoryPersist ErrorCode = "HISTORY_PERSIST_FAILED"
	ErrHistoryLoad    ErrorCode = "HISTORY_LOAD_FAILED"
	ErrScanInProgress ErrorCode = "SCAN_IN_PROGRESS"

	// Configuration errors
	ErrConfig ErrorCode = "CONFIG_ERROR"
)

// AppError carries an error code alongside a message and optional cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an existing error with an error code.
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Is reports whether err carries the given code, unwrapping as needed.
func Is(err error, code ErrorCode) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// CodeOf extracts the error code from err, or ErrInternal if none is attached.
func CodeOf(err error) ErrorCode {
	for err != nil {
		if appErr, ok := err.(*AppError); ok {
			return appErr.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return ErrInternal
}
