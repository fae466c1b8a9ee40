package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents network-related errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeRender represents page rendering errors
	ErrorTypeRender ErrorType = "render"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeNotify represents notification delivery errors
	ErrorTypeNotify ErrorType = "notify"
	// ErrorTypePublish represents publisher-related errors
	ErrorTypePublish ErrorType = "publish"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// MonitorError represents a pipeline or collaborator error
type MonitorError struct {
	Type      ErrorType
	Component string
	Message   string
	Err       error
	Time      time.Time
}

// Error implements the error interface
func (e *MonitorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Component, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Component, e.Message)
}

// Unwrap returns the underlying error
func (e *MonitorError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable
func (e *MonitorError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeNetwork, ErrorTypeRender, ErrorTypeNotify:
		return true
	default:
		return false
	}
}

// New creates a new MonitorError
func New(errType ErrorType, component, message string, err error) *MonitorError {
	return &MonitorError{
		Type:      errType,
		Component: component,
		Message:   message,
		Err:       err,
		Time:      time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(component, message string, err error) *MonitorError {
	return New(ErrorTypeNetwork, component, message, err)
}

// NewRender creates a new render error
func NewRender(component, message string, err error) *MonitorError {
	return New(ErrorTypeRender, component, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(component, message string, err error) *MonitorError {
	return New(ErrorTypeParsing, component, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(component string, duration time.Duration) *MonitorError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, component, message, nil)
}

// NewNotify creates a new notification error
func NewNotify(component, message string, err error) *MonitorError {
	return New(ErrorTypeNotify, component, message, err)
}

// NewPublish creates a new publisher error
func NewPublish(component, message string, err error) *MonitorError {
	return New(ErrorTypePublish, component, message, err)
}

// NewValidation creates a new validation error
func NewValidation(component, message string) *MonitorError {
	return New(ErrorTypeValidation, component, message, nil)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *MonitorError {
	return New(ErrorTypeConfiguration, "", message, err)
}
