// Package severity provides severity level constants and utilities
// for issues reported by the converter package.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error.
package severity

// Severity indicates the severity level of an issue recorded while
// converting a specification into schema documents.
type Severity int

const (
	// SeverityError indicates a type that could not be converted and was
	// skipped. The run continues; the type is excluded from the output.
	SeverityError Severity = iota

	// SeverityWarning indicates a best-effort transformation that should be
	// reviewed but did not prevent the type from being emitted.
	SeverityWarning

	// SeverityInfo indicates informational messages about processing choices.
	// These are non-actionable notices that may be useful for debugging.
	SeverityInfo
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}
