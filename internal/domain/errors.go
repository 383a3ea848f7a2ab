package domain

import "errors"

var (
	// ErrInvalidCredentials indicates a failed login. Unknown usernames and
	// wrong passwords are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned for any token that fails verification.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnauthenticated indicates that no token was presented.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden indicates an authenticated caller without the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound covers absent records and records owned by someone else.
	ErrNotFound = errors.New("not found")
	// ErrUserAlreadyExists is returned when registering a taken username or email.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidPassword is returned when a password check for a known user fails.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrInvalidInput wraps payload validation failures.
	ErrInvalidInput = errors.New("invalid input")
)
