// Package common defines shared constants and sentinel errors used across
// jobtrack components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrWriteFailed        = errors.New("write failed")
	ErrReadFailed         = errors.New("read failed")

	// Validation errors.
	ErrInvalidKey    = errors.New("invalid key")
	ErrInvalidStatus = errors.New("invalid status")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Cloud errors.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrTokenExpired = errors.New("token expired")
)
