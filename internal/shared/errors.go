package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Fetch errors. Callers surface only [ErrFetchFailed] to users.
	ErrFetchFailed        = fmt.Errorf("fetch failed")
	ErrSchemaMismatch     = fmt.Errorf("response does not match schema")
	ErrEmptyResponse      = fmt.Errorf("empty response")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidProfileURL = fmt.Errorf("invalid profile URL")
	ErrInvalidInput      = fmt.Errorf("invalid input")
	ErrMissingArgument   = fmt.Errorf("missing required argument")
	ErrInvalidArgument   = fmt.Errorf("invalid argument")
	ErrInvalidFlag       = fmt.Errorf("invalid flag value")
)
