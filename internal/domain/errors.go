package domain

import "errors"

// Sentinel errors shared by services and repositories.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrCreateFailed       = errors.New("error creating event")
	ErrUpdateFailed       = errors.New("error updating event")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already in use")
)
