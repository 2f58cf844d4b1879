package domain

import (
	"errors"
	"strings"
)

var (
	// ErrSectionNotFound is returned when a section id is outside the
	// fixed catalog.
	ErrSectionNotFound = errors.New("section not found")

	// ErrMissingFields is returned when a contact submission lacks a
	// required field after trimming.
	ErrMissingFields = errors.New("missing fields")

	// ErrDeliveryFailed is returned when the outbound mail channel
	// could not accept a message.
	ErrDeliveryFailed = errors.New("delivery failed")
)

// ConfigError reports deployment configuration that is absent. It names
// the missing keys but never their values.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "missing configuration: " + strings.Join(e.Missing, ", ")
}
