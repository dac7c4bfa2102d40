package service

import "errors"

// Failure kinds surfaced by the services. Controllers translate these to HTTP
// status codes; nothing below the controller layer knows about transport.
var (
	ErrUnauthorized  = errors.New("invalid or expired credentials")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("already exists")
	ErrUnprocessable = errors.New("unprocessable content")
	ErrInvalidEmail  = errors.New("email domain is not valid")

	// external LLM dependency failures
	ErrServiceUnavailable = errors.New("llm credential not configured")
	ErrBadGateway         = errors.New("llm provider error")
	ErrGatewayTimeout     = errors.New("llm provider timed out")
)
