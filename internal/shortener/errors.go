package shortener

import "errors"

var (
	// ErrNotFound is returned when no link matches the lookup key.
	ErrNotFound = errors.New("link not found")

	// ErrCodeTaken is returned by Repository.Insert when the short code is already in use.
	ErrCodeTaken = errors.New("short code already taken")

	// ErrURLTaken is returned by Repository.Insert when a link for the original URL already exists.
	ErrURLTaken = errors.New("original url already stored")

	// ErrGenerationExhausted is returned when every generated code collided with an existing one.
	ErrGenerationExhausted = errors.New("short code generation exhausted")

	// ErrUnavailable wraps failures of the underlying store.
	ErrUnavailable = errors.New("link store unavailable")
)
