package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrCircularReference indicates a circular $ref was detected.
	ErrCircularReference = errors.New("circular reference")

	// ErrPathTraversal indicates a path traversal attempt was blocked.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrUnsupported indicates a type was rejected by a filtering policy.
	ErrUnsupported = errors.New("unsupported type")

	// ErrExpansion indicates a type name could not be expanded into group/version.
	ErrExpansion = errors.New("expansion error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to parse an OpenAPI document.
// This includes YAML/JSON deserialization errors and a missing or
// unrecognizable version marker.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ReferenceError represents a failure to resolve a $ref.
// This includes missing references, circular references, and path traversal attempts.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// RefType indicates the reference type: "local" or "file"
	RefType string
	// IsCircular is true if this error is due to a circular reference
	IsCircular bool
	// IsPathTraversal is true if this error is due to a path traversal attempt
	IsPathTraversal bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	switch {
	case e.IsCircular:
		msg = "circular reference"
	case e.IsPathTraversal:
		msg = "path traversal detected"
	}
	if e.Ref != "" {
		msg += fmt.Sprintf(" for $ref %q", e.Ref)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ReferenceError) Is(target error) bool {
	switch target {
	case ErrReference:
		return true
	case ErrCircularReference:
		return e.IsCircular
	case ErrPathTraversal:
		return e.IsPathTraversal
	}
	return false
}

// UnsupportedTypeError represents a type rejected by a filtering policy:
// either the deprecated pkg-namespace heuristic or the deny-list of Kinds
// that embed JSON-Schema-shaped data.
type UnsupportedTypeError struct {
	// Name is the qualified type name (e.g. "io.k8s.api.core.v1.Pod")
	Name string
	// Reason describes which policy rejected the type
	Reason string
}

// Error returns a human-readable error message.
func (e *UnsupportedTypeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s not currently supported, %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("%s not currently supported", e.Name)
}

// Is reports whether target matches this error type.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupported
}

// ExpansionError represents a qualified type name with too few dot-delimited
// segments to derive a group and apiVersion from.
type ExpansionError struct {
	// Name is the qualified type name that could not be expanded
	Name string
}

// Error returns a human-readable error message.
func (e *ExpansionError) Error() string {
	return fmt.Sprintf("unable to determine group and apiversion from %s", e.Name)
}

// Is reports whether target matches this error type.
func (e *ExpansionError) Is(target error) bool {
	return target == ErrExpansion
}

// ResourceLimitError represents a resource limit being exceeded during
// reference resolution (nesting depth, file size, cached document count).
type ResourceLimitError struct {
	// ResourceType identifies the limited resource (e.g. "ref_depth")
	ResourceType string
	// Limit is the configured maximum
	Limit int
	// Actual is the observed value that exceeded the limit
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := fmt.Sprintf("resource limit exceeded: %s (limit %d, actual %d)", e.ResourceType, e.Limit, e.Actual)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input option.
type ConfigError struct {
	// Option is the offending option name
	Option string
	// Message describes why the value is invalid
	Message string
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for option " + e.Option
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
