package auth

import "errors"

var (
	ErrValidation = errors.New("validation error")

	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials covers both unknown email and wrong
	// password so the login endpoint cannot be used to probe which
	// emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRefreshToken covers missing, expired and foreign
	// refresh tokens on the refresh path.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrTokenNotFound is the revoke-path miss. Revoking an already
	// revoked token reports not-found every time rather than success.
	ErrTokenNotFound = errors.New("refresh token not found")
)
