package generation

import "errors"

// Common errors returned by Describer implementations
var (
	// ErrTransport is returned when the service could not be reached at
	// the network level (timeout, connection failure).
	ErrTransport = errors.New("transport error calling vision service")

	// ErrRateLimited is returned when the service rejected the call with a
	// rate-limit or quota signal. Treated as transient.
	ErrRateLimited = errors.New("vision service rate limit exceeded")

	// ErrServiceFailure is returned when the service responded with a
	// non-success status other than rate limiting.
	ErrServiceFailure = errors.New("vision service returned an error")

	// ErrEmptyResponse is returned when the service call succeeded but the
	// response carried no usable text.
	ErrEmptyResponse = errors.New("vision service returned no text output")

	// ErrInvalidConfig is returned when a Describer cannot be constructed
	// from its configuration.
	ErrInvalidConfig = errors.New("invalid describer configuration")
)
