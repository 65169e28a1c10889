package service

import "errors"

// Error taxonomy. Validation errors reject bad input and leave state
// untouched; ErrNotPermitted and friends signal illegal state transitions,
// which callers must be able to tell apart from bad input.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("record not found")
	ErrNotPermitted = errors.New("operation not permitted")
	ErrLockedOut    = errors.New("maximum login attempts exceeded")
	ErrNoEmployee   = errors.New("no active employee available to take the rental")
	ErrStorage      = errors.New("failed to persist changes")
)
