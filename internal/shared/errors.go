package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrAuthInProgress   = fmt.Errorf("authentication already in progress")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrMalformedResponse  = fmt.Errorf("malformed response")
	ErrStaleResult        = fmt.Errorf("result belongs to a previous view")

	// Storage errors
	ErrCollectionNotFound = fmt.Errorf("collection not found")
	ErrUnknownCollection  = fmt.Errorf("unknown collection")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrInvalidAmount   = fmt.Errorf("invalid donation amount")
	ErrOutOfRange      = fmt.Errorf("index out of range")
	ErrUnknownField    = fmt.Errorf("unknown field")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")

	// Playback errors
	ErrEmptyAudio = fmt.Errorf("empty audio payload")
)
