package scroller

import (
	"errors"
	"fmt"
)

// markerSymbol is used for identifying scroller configuration errors.
var markerSymbol = "scroller.config"

// ConfigError is the base type for errors raised while constructing a
// Scroller. Construction never proceeds past one of these.
type ConfigError struct {
	Name    string
	Message string
	Cause   error
	marker  string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause of the error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new configuration error.
func NewConfigError(name, message string, cause error) *ConfigError {
	return &ConfigError{
		Name:    name,
		Message: message,
		Cause:   cause,
		marker:  markerSymbol,
	}
}

func (e *ConfigError) base() *ConfigError {
	return e
}

// IsConfigError checks if the given error is a scroller configuration
// error, including the specific types embedding ConfigError.
func IsConfigError(err error) bool {
	var cfgErr interface{ base() *ConfigError }
	return errors.As(err, &cfgErr) && cfgErr.base().marker == markerSymbol
}

// InvalidElementError is returned when the element does not resolve to a
// single container.
type InvalidElementError struct {
	*ConfigError
	Selector string
}

// NewInvalidElementError creates a new invalid element error.
func NewInvalidElementError(selector string, cause error) *InvalidElementError {
	msg := "invalid element"
	if selector != "" {
		msg = fmt.Sprintf("invalid element %q", selector)
	}
	return &InvalidElementError{
		ConfigError: NewConfigError("InvalidElementError", msg, cause),
		Selector:    selector,
	}
}

// InvalidHeightError is returned when the height option is missing or
// cannot be parsed.
type InvalidHeightError struct {
	*ConfigError
	Value any
}

// NewInvalidHeightError creates a new invalid height error.
func NewInvalidHeightError(value any, cause error) *InvalidHeightError {
	return &InvalidHeightError{
		ConfigError: NewConfigError("InvalidHeightError", fmt.Sprintf("invalid height value %v", value), cause),
		Value:       value,
	}
}

// InvalidRowHeightError is returned when the row height is not positive.
type InvalidRowHeightError struct {
	*ConfigError
	RowHeight int
}

// NewInvalidRowHeightError creates a new invalid row height error.
func NewInvalidRowHeightError(rowHeight int) *InvalidRowHeightError {
	return &InvalidRowHeightError{
		ConfigError: NewConfigError("InvalidRowHeightError", fmt.Sprintf("rowHeight should be a positive number, got %d", rowHeight), nil),
		RowHeight:   rowHeight,
	}
}

// InvalidCallbackError is returned when a required callback is missing.
type InvalidCallbackError struct {
	*ConfigError
	Callback string
}

// NewInvalidCallbackError creates a new invalid callback error.
func NewInvalidCallbackError(callback string) *InvalidCallbackError {
	return &InvalidCallbackError{
		ConfigError: NewConfigError("InvalidCallbackError", callback+" is not a function", nil),
		Callback:    callback,
	}
}
