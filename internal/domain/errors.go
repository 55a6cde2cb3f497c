package domain

import "errors"

var (
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
	// ErrBlankInput indicates an empty or whitespace-only input; the
	// triggering operation is a no-op
	ErrBlankInput = errors.New("blank input")
	// ErrSendInFlight indicates a chat send is already in progress for
	// the session
	ErrSendInFlight = errors.New("send already in flight")
	// ErrStaleSession indicates the session is no longer the active one
	ErrStaleSession = errors.New("session is no longer active")
	// ErrSessionUnavailable indicates the hosted chat service could not
	// establish a session
	ErrSessionUnavailable = errors.New("chat session unavailable")
	// ErrCredentialMissing indicates the image service credential has
	// not been selected yet
	ErrCredentialMissing = errors.New("credential not selected")
	// ErrInvalidResolution indicates an unknown resolution tier
	ErrInvalidResolution = errors.New("invalid resolution")
)
