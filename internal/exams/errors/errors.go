package errors

import "errors"

var (
	ErrNotFound = errors.New("exam not found")

	ErrInvalidID = errors.New("invalid exam ID format")

	ErrResourceConflict = errors.New("exam conflicts with an existing booking")

	ErrNotEditable = errors.New("exam is completed or cancelled and can no longer change")

	ErrLockHeld = errors.New("exam date is locked by another booking attempt")
)
