package errors

import "errors"

var (
	ErrNotFound = errors.New("teacher not found")

	ErrInvalidID = errors.New("invalid teacher ID format")
)
