// Package service provides business logic for the application.
package service

import "errors"

// Service errors. Handlers map these to HTTP responses with errors.Is;
// anything else is treated as an internal error.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrAPIKeyRequired     = errors.New("external api key required")
	ErrSearchFailed       = errors.New("search failed")
	ErrChatFailed         = errors.New("chat failed")
)
