package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUpstreamUnavailable wraps network-level failures (connection refused,
	// DNS, timeout) talking to an upstream API.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrBookingCodeNotFound is the defined absent state of the booking-code
	// pipeline: every attempt ran and none produced a code.
	ErrBookingCodeNotFound = errors.New("booking code not found")

	// ErrLookupInFlight is returned when a booking-code lookup for the same
	// hotel is already running; duplicate lookups waste upstream quota.
	ErrLookupInFlight = errors.New("booking code lookup already in flight")
)

// ConfigurationError reports missing required environment configuration.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "missing configuration: " + strings.Join(e.Missing, ", ")
}

// UpstreamError reports a non-2xx HTTP response from an upstream API.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s returned %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// DestinationNotFoundError reports which resolution stage failed so the UI
// can tell the user whether the country, the city or the hotel list came up
// empty.
type DestinationNotFoundError struct {
	Stage string // "country", "city" or "hotels"
	Query string
}

func (e *DestinationNotFoundError) Error() string {
	return fmt.Sprintf("destination not found at stage %q: %s", e.Stage, e.Query)
}
