// Package errs holds the sentinel errors shared across the application.
package errs

import "errors"

var (
	// ErrInvalidURL is the only failure reported to API clients. It covers
	// malformed bodies, rejected URLs, malformed and out-of-range short codes.
	ErrInvalidURL     = errors.New("invalid url")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("data conflict")
	ErrInvalidRequest = errors.New("invalid request")
	ErrDBNotConnected = errors.New("database not connected")
	ErrNilDependency  = errors.New("nil dependency")
)
