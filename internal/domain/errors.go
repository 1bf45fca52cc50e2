package domain

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and password mismatch so
	// the login response cannot be used for account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrArticleNotFound = errors.New("article not found")
	ErrBookNotFound    = errors.New("book not found")
)
