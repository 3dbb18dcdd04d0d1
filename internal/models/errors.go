package models

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the simulation core
var (
	ErrConfiguration = errors.New("configuration error")
	ErrMissingData   = errors.New("missing data")
	ErrInvalidInput  = errors.New("invalid input")
)

// SimulationError carries the failing field alongside the error kind.
// errors.Is(err, ErrConfiguration) and friends work through Unwrap.
type SimulationError struct {
	Kind    error
	Field   string
	Message string
	Err     error
}

func (e *SimulationError) Error() string {
	msg := e.Kind.Error()
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *SimulationError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// NewConfigurationError reports a rejected configuration value.
func NewConfigurationError(field, format string, args ...any) error {
	return &SimulationError{Kind: ErrConfiguration, Field: field, Message: fmt.Sprintf(format, args...)}
}

// NewMissingDataError reports absent or underived team data.
func NewMissingDataError(field, format string, args ...any) error {
	return &SimulationError{Kind: ErrMissingData, Field: field, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidInputError reports input the analyzer cannot work with.
func NewInvalidInputError(field, format string, args ...any) error {
	return &SimulationError{Kind: ErrInvalidInput, Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsConfigurationError reports whether err is a configuration error
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsMissingDataError reports whether err is a missing data error
func IsMissingDataError(err error) bool {
	return errors.Is(err, ErrMissingData)
}

// IsInvalidInputError reports whether err is an invalid input error
func IsInvalidInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
