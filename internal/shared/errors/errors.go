package errors

import "errors"

// Domain errors
var (
	// Subject errors
	ErrEmptySubject          = errors.New("subject cannot be empty")
	ErrUnclassifiableSubject = errors.New("subject could not be classified as email, ip, domain, or package")
	ErrUnknownKind           = errors.New("unknown subject kind")
	ErrKindMismatch          = errors.New("provider does not support this subject kind")

	// Provider errors
	ErrNotConfigured     = errors.New("provider not configured")
	ErrMalformedResponse = errors.New("malformed provider response")
	ErrUpstreamStatus    = errors.New("unexpected upstream status")
	ErrNoProviders       = errors.New("no providers registered for subject kind")

	// Transport errors
	ErrTransportTimeout = errors.New("transport deadline exceeded")
	ErrTransport        = errors.New("transport failure")

	// Cache errors
	ErrCacheUnavailable = errors.New("cache store unavailable")
)
