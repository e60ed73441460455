package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garethr/openapi2jsonschema/loader"
)

func TestInjectSyntheticTypes(t *testing.T) {
	components := map[string]any{
		"Pet": map[string]any{"type": "object"},
		// Pre-existing definitions are overwritten.
		IntOrStringName: map[string]any{"type": "string"},
	}
	order := []string{"Pet", IntOrStringName}

	order = injectSyntheticTypes(components, order)

	assert.Equal(t, []string{"Pet", IntOrStringName, QuantityName}, order)
	assert.Equal(t, map[string]any{
		"oneOf": []any{
			map[string]any{"type": "string"},
			map[string]any{"type": "integer"},
		},
	}, components[IntOrStringName])
	assert.Equal(t, map[string]any{
		"oneOf": []any{
			map[string]any{"type": "string"},
			map[string]any{"type": "number"},
		},
	}, components[QuantityName])
}

func TestEnrichGroupVersionKind(t *testing.T) {
	pod := map[string]any{
		"properties": map[string]any{
			"apiVersion": map[string]any{"type": "string"},
			"kind":       map[string]any{"type": "string"},
		},
		groupVersionKindExtension: []any{
			map[string]any{"group": "", "version": "v1", "kind": "Pod"},
		},
	}
	deployment := map[string]any{
		"properties": map[string]any{
			"apiVersion": map[string]any{"type": "string"},
			"kind":       map[string]any{"type": "string"},
		},
		groupVersionKindExtension: []any{
			map[string]any{"group": "apps", "version": "v1", "kind": "Deployment"},
			map[string]any{"group": "apps", "version": "v1beta1", "kind": "Deployment"},
		},
	}
	components := map[string]any{"Pod": pod, "Deployment": deployment}

	found := enrichGroupVersionKind(components, []string{"Pod", "Deployment"}, loader.NopLogger{})
	assert.Empty(t, found)

	// Empty group yields the bare version, no leading slash.
	podProps := pod["properties"].(map[string]any)
	assert.Equal(t, []any{"v1"}, podProps["apiVersion"].(map[string]any)["enum"])
	assert.Equal(t, []any{"Pod"}, podProps["kind"].(map[string]any)["enum"])

	deployProps := deployment["properties"].(map[string]any)
	assert.Equal(t, []any{"apps/v1", "apps/v1beta1"}, deployProps["apiVersion"].(map[string]any)["enum"])
	// The kind value repeats across entries but is only appended once.
	assert.Equal(t, []any{"Deployment"}, deployProps["kind"].(map[string]any)["enum"])
}

func TestEnrichGroupVersionKindIdempotent(t *testing.T) {
	pod := map[string]any{
		"properties": map[string]any{
			"apiVersion": map[string]any{"type": "string"},
		},
		groupVersionKindExtension: []any{
			map[string]any{"group": "", "version": "v1", "kind": "Pod"},
		},
	}
	components := map[string]any{"Pod": pod}

	enrichGroupVersionKind(components, []string{"Pod"}, loader.NopLogger{})
	enrichGroupVersionKind(components, []string{"Pod"}, loader.NopLogger{})

	props := pod["properties"].(map[string]any)
	assert.Equal(t, []any{"v1"}, props["apiVersion"].(map[string]any)["enum"])
}

func TestEnrichGroupVersionKindNoProperties(t *testing.T) {
	components := map[string]any{
		"Empty": map[string]any{"type": "object"},
	}

	found := enrichGroupVersionKind(components, []string{"Empty"}, loader.NopLogger{})
	require.Len(t, found, 1)
	assert.Equal(t, "Empty", found[0].TypeName)
	assert.Equal(t, SeverityWarning, found[0].Severity)

	// The type stays in the container untouched.
	assert.Contains(t, components, "Empty")
}

func TestGroupVersion(t *testing.T) {
	assert.Equal(t, "v1", groupVersion("", "v1"))
	assert.Equal(t, "apps/v1", groupVersion("apps", "v1"))
	assert.Equal(t, "apps", groupVersion("apps", ""))
}

func TestReplaceIntOrString(t *testing.T) {
	props := map[string]any{
		"port": map[string]any{
			"type":   "string",
			"format": "int-or-string",
		},
		"replicas": map[string]any{"type": "integer"},
		"template": map[string]any{
			"properties": map[string]any{
				"targetPort": map[string]any{
					"type":   "string",
					"format": "int-or-string",
				},
			},
		},
		"rules": []any{
			map[string]any{
				"backendPort": map[string]any{"format": "int-or-string"},
			},
		},
	}

	ReplaceIntOrString(props)

	polymorphic := map[string]any{
		"oneOf": []any{
			map[string]any{"type": "string"},
			map[string]any{"type": "integer"},
		},
	}
	assert.Equal(t, polymorphic, props["port"])
	assert.Equal(t, map[string]any{"type": "integer"}, props["replicas"])

	nested := props["template"].(map[string]any)["properties"].(map[string]any)
	assert.Equal(t, polymorphic, nested["targetPort"])

	inList := props["rules"].([]any)[0].(map[string]any)
	assert.Equal(t, polymorphic, inList["backendPort"])
}

func TestAllowNullOptionalFields(t *testing.T) {
	props := map[string]any{
		"name":   map[string]any{"type": "string"},
		"id":     map[string]any{"type": "integer"},
		"labels": map[string]any{"type": "object"},
	}

	AllowNullOptionalFields(props, []string{"id"})

	// Optional scalars gain a null alternative; required ones do not.
	assert.Equal(t, []any{"string", "null"}, props["name"].(map[string]any)["type"])
	assert.Equal(t, "integer", props["id"].(map[string]any)["type"])
	assert.Equal(t, []any{"object", "null"}, props["labels"].(map[string]any)["type"])
}

func TestAllowNullOptionalFieldsNested(t *testing.T) {
	props := map[string]any{
		"spec": map[string]any{
			"type":     "object",
			"required": []any{"image"},
			"properties": map[string]any{
				"image":    map[string]any{"type": "string"},
				"hostname": map[string]any{"type": "string"},
			},
		},
		"containers": map[string]any{
			"type": "array",
			"items": map[string]any{
				"properties": map[string]any{
					"name": map[string]any{"type": "string"},
				},
			},
		},
	}

	AllowNullOptionalFields(props, nil)

	spec := props["spec"].(map[string]any)
	assert.Equal(t, []any{"object", "null"}, spec["type"])
	specProps := spec["properties"].(map[string]any)
	// Nested object schemas consult their own required list.
	assert.Equal(t, "string", specProps["image"].(map[string]any)["type"])
	assert.Equal(t, []any{"string", "null"}, specProps["hostname"].(map[string]any)["type"])

	items := props["containers"].(map[string]any)["items"].(map[string]any)
	name := items["properties"].(map[string]any)["name"].(map[string]any)
	assert.Equal(t, []any{"string", "null"}, name["type"])
}

func TestAllowNullOptionalFieldsSkipsNonScalarTypes(t *testing.T) {
	props := map[string]any{
		"already": map[string]any{"type": []any{"string", "null"}},
		"refOnly": map[string]any{"$ref": "Other.json"},
	}

	AllowNullOptionalFields(props, nil)

	assert.Equal(t, []any{"string", "null"}, props["already"].(map[string]any)["type"])
	assert.NotContains(t, props["refOnly"].(map[string]any), "type")
}
