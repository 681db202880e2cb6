package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iomz/hito/hito"
	"github.com/iomz/hito/hito/store"
)

// CLIError represents a user-friendly CLI error with context and suggestions
type CLIError struct {
	Operation   string   // The operation that failed (e.g., "list", "assign")
	Cause       string   // The underlying cause (e.g., "category not found")
	Details     string   // Additional technical details
	Suggestions []string // Helpful suggestions for the user
	Underlying  error    // Original error for debugging
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var msg strings.Builder

	// Start with operation context
	if e.Operation != "" {
		msg.WriteString(fmt.Sprintf("Failed to %s", e.Operation))
	} else {
		msg.WriteString("Operation failed")
	}

	if e.Cause != "" {
		msg.WriteString(fmt.Sprintf(": %s", e.Cause))
	}

	if e.Details != "" {
		msg.WriteString(fmt.Sprintf(" (%s)", e.Details))
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return msg.String()
}

// Unwrap returns the underlying error for error chain compatibility
func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// NewValidationError creates an error for validation failures
func NewValidationError(operation, field, value string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("invalid %s: %q", field, value),
		Suggestions: suggestions,
	}
}

// NewNotFoundError creates an error for missing resources
func NewNotFoundError(operation, resource, id string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("%s %q not found", resource, id),
		Suggestions: suggestions,
	}
}

// NewConfigError creates an error for configuration issues
func NewConfigError(operation string, underlying error, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       "configuration error",
		Details:     underlying.Error(),
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// NewStoreError creates an error for failures of the backend
func NewStoreError(operation string, underlying error, suggestions ...string) *CLIError {
	cause := "operation failed"
	details := ""

	if underlying != nil {
		details = underlying.Error()

		// Provide more user-friendly descriptions for common errors
		switch {
		case errors.Is(underlying, store.ErrLockUnavailable):
			cause = "config file is locked by another process"
			suggestions = append(suggestions, CommonSuggestions.RetryLater)
		case hito.IsCorrupt(underlying):
			cause = "a data file could not be parsed"
			suggestions = append(suggestions, CommonSuggestions.CheckFile)
		case hito.IsNotFound(underlying):
			cause = "resource not found"
		case hito.IsInvalid(underlying):
			cause = "invalid data provided"
		case strings.Contains(strings.ToLower(details), "permission denied"):
			cause = "insufficient permissions"
			suggestions = append(suggestions, CommonSuggestions.CheckPerms)
		}
	}

	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Details:     details,
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// WrapError wraps an existing error with CLI-friendly context
func WrapError(operation string, err error, suggestions ...string) error {
	if err == nil {
		return nil
	}

	// If it's already a CLIError, just update the operation
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		if cliErr.Operation == "" {
			cliErr.Operation = operation
		}
		return cliErr
	}

	return NewStoreError(operation, err, suggestions...)
}

// Common error messages and suggestions
var (
	CommonSuggestions = struct {
		CheckStore      string
		CheckCategories string
		CheckConfig     string
		CheckFile       string
		RunHelp         string
		CheckPerms      string
		RetryLater      string
	}{
		CheckStore:      "Verify --store points to a valid config file",
		CheckCategories: "List configured categories with 'hito categories list'",
		CheckConfig:     "Check your hito.yaml or HITO_* environment variables",
		CheckFile:       "Inspect the file shown above or move it aside to start fresh",
		RunHelp:         "Run command with --help for usage information",
		CheckPerms:      "Check file permissions and directory access",
		RetryLater:      "Retry once the other hito process has finished",
	}
)
