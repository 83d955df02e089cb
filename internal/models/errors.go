package models

import "errors"

// Error kinds shared across clients, services, and transports.
// Wrapped errors are matched with errors.Is.
var (
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrMalformedResponse   = errors.New("malformed upstream response")
	ErrNoMatch             = errors.New("no match")
	ErrNoAnnualData        = errors.New("no annual data")
	ErrJoinEmpty           = errors.New("revenue and net income share no years")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidIdentifier   = errors.New("invalid identifier")
	ErrInvalidTransition   = errors.New("invalid session transition")
)
