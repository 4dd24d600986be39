package domain

import "errors"

// Sentinel errors shared across services and mapped to HTTP status codes by
// the API error handler. Validation failures wrap ErrValidation so the wrap
// site's message survives to the client.
var (
	ErrValidation         = errors.New("invalid input")
	ErrUserExists         = errors.New("username or email already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrRecordingNotFound  = errors.New("recording not found")
	ErrUnsupportedMedia   = errors.New("only audio uploads are accepted")
	ErrPayloadTooLarge    = errors.New("uploaded file is too large")
)
