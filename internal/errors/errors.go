// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidSymbol    = errors.New("invalid symbol")
	ErrFetchFailed      = errors.New("market data fetch failed")
	ErrInsufficientData = errors.New("insufficient data")
	ErrMissingColumn    = errors.New("required column missing")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrDataNotFound     = errors.New("data not found")
	ErrDatabaseError    = errors.New("database error")
	ErrPlanNotFound     = errors.New("trade plan not found")
)

// FetchError represents an error from the market data provider.
type FetchError struct {
	Symbol  string
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch error [%s]: %s: %v", e.Symbol, e.Message, e.Err)
	}
	return fmt.Sprintf("fetch error [%s]: %s", e.Symbol, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError.
func NewFetchError(symbol string, status int, message string, err error) *FetchError {
	return &FetchError{
		Symbol:  symbol,
		Status:  status,
		Message: message,
		Err:     err,
	}
}

// DataError represents malformed or incomplete series data. Structurally
// missing required fields (Close, High, Low) surface as DataError; missing
// optional indicator columns do not, they get documented defaults.
type DataError struct {
	Symbol  string
	Field   string
	Message string
	Err     error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data error [%s] %s: %s: %v", e.Symbol, e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("data error [%s] %s: %s", e.Symbol, e.Field, e.Message)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError creates a new DataError.
func NewDataError(symbol, field, message string, err error) *DataError {
	return &DataError{
		Symbol:  symbol,
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
