// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

var (
	// ErrNoToken indicates the request carried no bearer credential.
	ErrNoToken = errors.New("no token")

	// ErrInvalidToken indicates a bad signature, malformed payload or expired token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrIdentityNotFound indicates the token's subject no longer exists.
	ErrIdentityNotFound = errors.New("identity not found")

	// ErrInvalidCredentials indicates a failed email/password check.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken indicates a unique constraint violation on the email column.
	ErrEmailTaken = errors.New("email already taken")

	// ErrValidation indicates a request that fails input validation.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the caller is not the owner of the entity.
	ErrForbidden = errors.New("forbidden")
)
