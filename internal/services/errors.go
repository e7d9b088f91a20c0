package services

import "errors"

// Sentinel errors handlers translate into response status codes.
var (
	// ErrNotFound indicates the addressed record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUsernameTaken indicates the username is already in use.
	ErrUsernameTaken = errors.New("please use a different username")

	// ErrEmailTaken indicates the email address is already in use.
	ErrEmailTaken = errors.New("please use a different email address")

	// ErrInvalidCredentials covers every authentication failure. It is
	// deliberately generic so responses cannot be used for enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
