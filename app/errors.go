// Copyright 2026 The Places Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package app

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRouterNotReady wraps the cause of a rejected readiness wait.
	ErrRouterNotReady = errors.New("router not ready")

	// ErrAlreadyMounted indicates a second attempt to mount the UI root.
	ErrAlreadyMounted = errors.New("root already mounted")

	// ErrAlreadyRunning indicates that [App.Run] was called more than once.
	ErrAlreadyRunning = errors.New("app already running")

	// ErrNilHost indicates that [WithHost] was given nil.
	ErrNilHost = errors.New("host is nil")
)

// ConfigError represents a configuration validation error with structured information.
//
// ConfigError keeps the field name constant so callers can inspect failures
// programmatically and render them however they like. Validation happens once,
// before the app boots.
type ConfigError struct {
	// Field is the dotted name of the configuration field that failed validation
	Field string
	// Value is the actual value that was provided (may be nil for missing values)
	Value any
	// Message is a human-readable error message explaining the validation failure
	Message string
	// Constraint is an optional constraint that was violated (e.g., "required", "oneof")
	Constraint string
}

// Error implements the error interface and returns a formatted error message.
func (e *ConfigError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("configuration error in %s: %s (constraint: %s, value: %v)",
			e.Field, e.Message, e.Constraint, e.Value)
	}
	if e.Value != nil {
		return fmt.Sprintf("configuration error in %s: %s (value: %v)",
			e.Field, e.Message, e.Value)
	}

	return fmt.Sprintf("configuration error in %s: %s", e.Field, e.Message)
}

// ValidationError represents multiple configuration validation errors.
// ValidationError allows collecting all validation errors before returning them.
type ValidationError struct {
	Errors []*ConfigError
}

// Error implements the error interface and returns a formatted error message
// listing all validation errors.
func (ve *ValidationError) Error() string {
	if len(ve.Errors) == 0 {
		return "validation errors: (no errors)"
	}
	if len(ve.Errors) == 1 {
		return ve.Errors[0].Error()
	}

	var msg strings.Builder
	_, _ = fmt.Fprintf(&msg, "validation errors (%d):", len(ve.Errors))
	for i, err := range ve.Errors {
		_, _ = fmt.Fprintf(&msg, "\n  %d. %s", i+1, err.Error())
	}

	return msg.String()
}

// Unwrap exposes the individual errors to [errors.As].
func (ve *ValidationError) Unwrap() []error {
	errs := make([]error, len(ve.Errors))
	for i, e := range ve.Errors {
		errs[i] = e
	}
	return errs
}

// Add appends a new ConfigError to the ValidationError.
func (ve *ValidationError) Add(err *ConfigError) {
	ve.Errors = append(ve.Errors, err)
}

// HasErrors returns true if there are any validation errors.
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// ToError returns nil if there are no errors, otherwise returns the ValidationError
// as an error.
func (ve *ValidationError) ToError() error {
	if !ve.HasErrors() {
		return nil
	}

	return ve
}

// newFieldError creates a [ConfigError] for a field validation failure.
func newFieldError(field string, value any, message, constraint string) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Message:    message,
		Constraint: constraint,
	}
}

// newEmptyFieldError creates a [ConfigError] for an empty required field.
func newEmptyFieldError(field string) *ConfigError {
	return newFieldError(field, nil, "cannot be empty", "required")
}

// newInvalidEnumError creates a [ConfigError] for an invalid enum value.
func newInvalidEnumError(field string, value any, validValues []string) *ConfigError {
	return newFieldError(field, value,
		fmt.Sprintf("must be one of: %v", validValues),
		fmt.Sprintf("enum: %v", validValues))
}
