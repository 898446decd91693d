package services

import (
	"errors"

	"github.com/baharkarakas/sample-app/internal/repository"
)

var (
	// ErrNotFound is returned when a referenced id does not resolve.
	ErrNotFound = repository.ErrNotFound
	// ErrForbidden is returned when the actor may not perform the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials is the single failure for an unknown email and a
	// wrong password.
	ErrInvalidCredentials = errors.New("invalid email/password combination")
)
