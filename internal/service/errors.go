package service

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
	// ErrConflict is returned when a write keeps losing to concurrent writers.
	ErrConflict = errors.New("conflict")
)
