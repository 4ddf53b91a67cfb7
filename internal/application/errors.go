package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound      = errors.New("not found")
	ErrUnknownWindow = errors.New("unknown window")
	ErrUnknownNode   = errors.New("unknown node")
	ErrUnknownEvent  = errors.New("unknown event")
	ErrInvalidMode   = errors.New("invalid proxy mode")
	ErrNoProxies     = errors.New("no proxies configured")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// EventError reports a host event that could not be applied
type EventError struct {
	Line int
	Type string
	Err  error
}

func (e *EventError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("event on line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("event %s on line %d: %v", e.Type, e.Line, e.Err)
}

func (e *EventError) Unwrap() error {
	return e.Err
}
