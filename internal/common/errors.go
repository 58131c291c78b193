// Package common defines shared constants and sentinel errors used across
// the stores, the persistence adapters and the CLI. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Session errors.
	ErrUnauthenticated    = errors.New("not logged in")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUsername  = errors.New("username already exists")

	// Post errors.
	ErrPostNotFound = errors.New("post not found")
	ErrNotAuthor    = errors.New("only the author can change this post")

	// Form validation errors (view level, raised before a store is called).
	ErrValidation = errors.New("validation failed")

	// Delayed operations that lost to a newer call of the same kind.
	ErrSuperseded = errors.New("superseded by a newer request")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
