package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInternalServer = errors.New("internal server error")

	// Input and credential errors
	ErrInvalidInput         = errors.New("invalid input")
	ErrEmptyField           = fmt.Errorf("%w: required field is empty", ErrInvalidInput)
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrWrongOldPassword     = errors.New("old password is incorrect")
	ErrMismatch             = errors.New("new password and confirmation do not match")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Recovery errors
	ErrRecoveryNotAvailable = errors.New("password recovery is not available for this account")

	// ErrStorage marks a failed read or write against the key-value store.
	ErrStorage = errors.New("storage unavailable")
)
