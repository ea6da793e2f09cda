package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPersistence        = errors.New("persistence failure")
	ErrSigning            = errors.New("token signing failed")
	ErrInvalidClaims      = errors.New("token claims incomplete")
)
