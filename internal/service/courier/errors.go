package courier

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidName           = errors.New("invalid name")
	ErrInvalidPhone          = errors.New("invalid phone")
	ErrInvalidTransport      = errors.New("invalid transport type")

	ErrCourierNotFound = errors.New("courier not found")
	ErrUnauthorized    = errors.New("unauthorized")
)
