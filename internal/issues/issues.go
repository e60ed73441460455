// Package issues provides a unified issue type for per-type conversion problems.
package issues

import (
	"fmt"

	"github.com/garethr/openapi2jsonschema/internal/severity"
)

// Issue represents a single problem found while converting one type
// definition into a schema document.
type Issue struct {
	// TypeName is the qualified name of the offending type (e.g. "io.k8s.api.core.v1.Pod")
	TypeName string
	// Kind is the last dot-delimited segment of TypeName
	Kind string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Err is the underlying error, if any. It supports errors.Is/As against
	// the oaserrors sentinel errors.
	Err error
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	name := i.TypeName
	if name == "" {
		name = i.Kind
	}
	if i.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", symbol, name, i.Message, i.Err)
	}
	return fmt.Sprintf("%s %s: %s", symbol, name, i.Message)
}
