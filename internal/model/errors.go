package model

import "errors"

var (
	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized means the request carries no valid session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrEmailTaken means a user with the email already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials means email/password did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
