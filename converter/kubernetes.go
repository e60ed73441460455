// This file implements the Kubernetes-specific enrichment steps: synthetic
// scalar types, apiVersion/kind enum injection from the
// x-kubernetes-group-version-kind extension, int-or-string normalization and
// nullable relaxation of optional fields.

package converter

import (
	"slices"

	"github.com/garethr/openapi2jsonschema/internal/severity"
	"github.com/garethr/openapi2jsonschema/loader"
)

const (
	// IntOrStringName is the qualified name of the synthetic IntOrString type.
	IntOrStringName = "io.k8s.apimachinery.pkg.util.intstr.IntOrString"

	// QuantityName is the qualified name of the synthetic Quantity type.
	QuantityName = "io.k8s.apimachinery.pkg.api.resource.Quantity"

	// groupVersionKindExtension carries a type's group/version/kind identity.
	groupVersionKindExtension = "x-kubernetes-group-version-kind"

	// intOrStringFormat marks properties encoded as either integer or string
	// on the wire.
	intOrStringFormat = "int-or-string"
)

// injectSyntheticTypes adds the IntOrString and Quantity definitions to the
// components container, overwriting any existing definition with the same
// name, and returns the iteration order with the synthetic names appended
// when not already present.
func injectSyntheticTypes(components map[string]any, order []string) []string {
	components[IntOrStringName] = map[string]any{
		"oneOf": []any{
			map[string]any{"type": "string"},
			map[string]any{"type": "integer"},
		},
	}
	// Although the Kubernetes API does not allow `number` as a valid
	// Quantity value, almost all Kubernetes tooling accepts it, so the
	// definition is widened to allow `number` values.
	components[QuantityName] = map[string]any{
		"oneOf": []any{
			map[string]any{"type": "string"},
			map[string]any{"type": "number"},
		},
	}

	for _, name := range []string{IntOrStringName, QuantityName} {
		if !slices.Contains(order, name) {
			order = append(order, name)
		}
	}
	return order
}

// enrichGroupVersionKind populates apiVersion and kind property enums from
// each type's x-kubernetes-group-version-kind extension entries. A type
// without a properties object is reported and skipped but stays in the
// container; it may still be emitted later.
func enrichGroupVersionKind(components map[string]any, order []string, log loader.Logger) []TypeIssue {
	var found []TypeIssue
	for _, name := range order {
		definition, ok := components[name].(map[string]any)
		if !ok {
			continue
		}

		props, ok := definition["properties"].(map[string]any)
		if !ok {
			log.Error("type has no properties", "type", name)
			found = append(found, TypeIssue{
				TypeName: name,
				Kind:     Kind(name),
				Message:  "has no properties",
				Severity: severity.SeverityWarning,
			})
			continue
		}

		entries, ok := definition[groupVersionKindExtension].([]any)
		if !ok {
			continue
		}
		for _, entry := range entries {
			gvk, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			group, _ := gvk["group"].(string)
			version, _ := gvk["version"].(string)
			kind, _ := gvk["kind"].(string)

			if apiVersionSchema, ok := props["apiVersion"].(map[string]any); ok {
				appendNoDuplicates(apiVersionSchema, "enum", groupVersion(group, version))
			}
			if kindSchema, ok := props["kind"].(map[string]any); ok {
				appendNoDuplicates(kindSchema, "enum", kind)
			}
		}
	}
	return found
}

// groupVersion joins a group and version into an apiVersion enum value.
// Empty segments are omitted along with their slash: an empty group yields
// the bare version.
func groupVersion(group, version string) string {
	switch {
	case group == "":
		return version
	case version == "":
		return group
	default:
		return group + "/" + version
	}
}

// appendNoDuplicates appends value to the sequence stored under key,
// creating the sequence when absent and never introducing a duplicate.
func appendNoDuplicates(node map[string]any, key string, value any) {
	list, _ := node[key].([]any)
	if slices.Contains(list, value) {
		return
	}
	node[key] = append(list, value)
}

// ReplaceIntOrString normalizes every property using Kubernetes'
// int-or-string wire convention into a polymorphic schema accepting either a
// string or an integer. The props tree is mutated in place, recursing into
// nested property structures without altering unrelated properties.
func ReplaceIntOrString(props map[string]any) {
	for key, value := range props {
		switch v := value.(type) {
		case map[string]any:
			if format, ok := v["format"].(string); ok && format == intOrStringFormat {
				props[key] = map[string]any{
					"oneOf": []any{
						map[string]any{"type": "string"},
						map[string]any{"type": "integer"},
					},
				}
				continue
			}
			ReplaceIntOrString(v)
		case []any:
			for _, item := range v {
				if m, ok := item.(map[string]any); ok {
					ReplaceIntOrString(m)
				}
			}
		}
	}
}

// AllowNullOptionalFields relaxes the type of every optional property to
// additionally accept null. required lists the names of the required
// properties of the enclosing object schema; nested object schemas consult
// their own required list. The props tree is mutated in place.
func AllowNullOptionalFields(props map[string]any, required []string) {
	for name, value := range props {
		schema, ok := value.(map[string]any)
		if !ok {
			continue
		}
		if !slices.Contains(required, name) {
			if t, ok := schema["type"].(string); ok && t != "null" {
				schema["type"] = []any{t, "null"}
			}
		}
		relaxNested(schema)
	}
}

// relaxNested descends through a property schema looking for nested object
// schemas whose properties should be relaxed in turn.
func relaxNested(schema map[string]any) {
	if nested, ok := schema["properties"].(map[string]any); ok {
		AllowNullOptionalFields(nested, requiredFields(schema))
	}
	if items, ok := schema["items"].(map[string]any); ok {
		relaxNested(items)
	}
	if ap, ok := schema["additionalProperties"].(map[string]any); ok {
		relaxNested(ap)
	}
	for _, key := range []string{"oneOf", "anyOf", "allOf"} {
		list, ok := schema[key].([]any)
		if !ok {
			continue
		}
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				relaxNested(m)
			}
		}
	}
}
