// This file implements $ref rewriting from OpenAPI's internal pointer syntax
// into the file-based reference scheme used by the emitted schemas.

package converter

import "strings"

// oas3SchemasPrefix is the internal pointer prefix for 3.0+ type references.
const oas3SchemasPrefix = "#/components/schemas/"

// refRewriter is a function that rewrites a $ref string to a different format.
// It is used by [rewriteRefs] to apply version-specific reference transformations.
type refRewriter func(ref string) string

// rewriteRefs recursively walks a document node and rewrites all $ref values
// using the provided rewriter function. Every $ref is visited regardless of
// nesting: properties, items, additionalProperties, composition keywords and
// anything else; a single missed reference silently breaks the produced
// schema's validity. The node is mutated in place.
func rewriteRefs(node any, rewrite refRewriter) {
	switch v := node.(type) {
	case map[string]any:
		if ref, ok := v["$ref"].(string); ok {
			v["$ref"] = rewrite(ref)
		}
		for _, val := range v {
			rewriteRefs(val, rewrite)
		}
	case []any:
		for _, item := range v {
			rewriteRefs(item, rewrite)
		}
	}
}

// oas2Rewriter rewrites pre-3.0 local references to resolve against the
// shared definitions file: "#/definitions/Name" becomes
// "<prefix>#/definitions/Name". Non-local references pass through unchanged.
func oas2Rewriter(prefix string) refRewriter {
	return func(ref string) string {
		if !strings.HasPrefix(ref, "#/") {
			return ref
		}
		return prefix + ref
	}
}

// oas3Rewriter rewrites 3.0+ component references to same-directory file
// references: "#/components/schemas/Name" becomes "Name.json". Other
// references pass through unchanged.
func oas3Rewriter() refRewriter {
	return func(ref string) string {
		if !strings.HasPrefix(ref, oas3SchemasPrefix) {
			return ref
		}
		return ref[len(oas3SchemasPrefix):] + ".json"
	}
}
