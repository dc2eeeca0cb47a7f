package auth

import "errors"

var (
	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials is returned when authentication fails.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound signals that the user could not be located.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnauthorized represents missing or invalid authentication tokens.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUsernameTooShort rejects usernames under three characters.
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	// ErrPasswordTooShort rejects passwords under six characters.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)
