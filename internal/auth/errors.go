package auth

import "errors"

var (
	// ErrMissingToken is returned when a request carries no usable
	// Authorization header.
	ErrMissingToken = errors.New("missing auth token")

	// ErrInvalidToken covers bad signatures and malformed tokens.
	ErrInvalidToken = errors.New("invalid auth token")

	// ErrExpiredToken is returned when the token's exp has passed.
	ErrExpiredToken = errors.New("auth token expired")
)
