// Package oaserrors provides structured error types for openapi2jsonschema.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between fatal errors that abort
// an entire run and per-type errors that only skip a single schema.
//
// # Error Categories
//
//   - ParseError: YAML/JSON parsing failures and missing version markers
//   - ReferenceError: $ref resolution failures, circular references, path traversal
//   - UnsupportedTypeError: types rejected by the deny-list or deprecated-namespace filters
//   - ExpansionError: qualified type names too short to derive group/version from
//   - ResourceLimitError: resource exhaustion (depth, size, count limits)
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.As
//
//	result, err := c.Convert(doc, sink)
//	for _, issue := range result.Issues {
//	    var unsupported *oaserrors.UnsupportedTypeError
//	    if errors.As(issue.Err, &unsupported) {
//	        // The type was rejected by policy rather than failing mid-rewrite.
//	    }
//	}
package oaserrors
