package domain

import (
	"errors"
	"fmt"
)

// Failure taxonomy for gateway calls. Loader and cart store record these
// instead of propagating them; the delivery layer maps them to HTTP statuses.
var (
	ErrNotFound = errors.New("not found")

	// ErrUnavailable marks a product whose availability is zero or could not
	// be confirmed; unconfirmed counts as unavailable.
	ErrUnavailable = errors.New("product is unavailable")

	// ErrLoadInFlight and ErrExhausted are loadNext precondition violations.
	ErrLoadInFlight = errors.New("page load already in flight")
	ErrExhausted    = errors.New("catalog is exhausted")
)

// NetworkError wraps a request that could not complete at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// GatewayError is a non-success response from a gateway.
type GatewayError struct {
	StatusCode int
	Endpoint   string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway returned status %d for %s", e.StatusCode, e.Endpoint)
}
