package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garethr/openapi2jsonschema/oaserrors"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestInlineLocalRef(t *testing.T) {
	node := map[string]any{
		"definitions": map[string]any{
			"Tag": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"label": map[string]any{"type": "string"},
				},
			},
		},
		"properties": map[string]any{
			"tag": map[string]any{"$ref": "#/definitions/Tag"},
		},
	}

	require.NoError(t, NewRefResolver(t.TempDir()).Inline(node))

	tag := node["properties"].(map[string]any)["tag"].(map[string]any)
	assert.NotContains(t, tag, "$ref")
	assert.Equal(t, "object", tag["type"])
}

func TestInlineFileRef(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "_definitions.json", `{
  "definitions": {
    "Tag": {
      "type": "object",
      "properties": {
        "label": {"type": "string"}
      }
    }
  }
}`)

	node := map[string]any{
		"properties": map[string]any{
			"tag": map[string]any{"$ref": "_definitions.json#/definitions/Tag"},
		},
	}

	require.NoError(t, NewRefResolver(dir).Inline(node))

	tag := node["properties"].(map[string]any)["tag"].(map[string]any)
	assert.NotContains(t, tag, "$ref")
	label := tag["properties"].(map[string]any)["label"].(map[string]any)
	assert.Equal(t, "string", label["type"])
}

func TestInlineChainedFileRefs(t *testing.T) {
	// A ref inlined from the shared definitions file may itself carry local
	// refs, which must resolve against that file rather than the root node.
	dir := t.TempDir()
	writeFile(t, dir, "_definitions.json", `{
  "definitions": {
    "Pet": {
      "type": "object",
      "properties": {
        "tag": {"$ref": "#/definitions/Tag"}
      }
    },
    "Tag": {
      "type": "object",
      "properties": {
        "label": {"type": "string"}
      }
    }
  }
}`)

	node := map[string]any{
		"properties": map[string]any{
			"pet": map[string]any{"$ref": "_definitions.json#/definitions/Pet"},
		},
	}

	require.NoError(t, NewRefResolver(dir).Inline(node))

	pet := node["properties"].(map[string]any)["pet"].(map[string]any)
	tag := pet["properties"].(map[string]any)["tag"].(map[string]any)
	assert.NotContains(t, tag, "$ref")
	assert.Equal(t, "object", tag["type"])
}

func TestInlineCircularRef(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "_definitions.json", `{
  "definitions": {
    "Node": {
      "type": "object",
      "properties": {
        "next": {"$ref": "#/definitions/Node"}
      }
    }
  }
}`)

	node := map[string]any{
		"properties": map[string]any{
			"root": map[string]any{"$ref": "_definitions.json#/definitions/Node"},
		},
	}

	err := NewRefResolver(dir).Inline(node)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrCircularReference)
}

func TestInlineMissingFile(t *testing.T) {
	node := map[string]any{
		"properties": map[string]any{
			"tag": map[string]any{"$ref": "missing.json"},
		},
	}

	err := NewRefResolver(t.TempDir()).Inline(node)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrReference)
}

func TestInlinePathTraversal(t *testing.T) {
	dir := t.TempDir()
	node := map[string]any{
		"properties": map[string]any{
			"tag": map[string]any{"$ref": "../outside.json#/definitions/Tag"},
		},
	}

	err := NewRefResolver(dir).Inline(node)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrPathTraversal)
}

func TestInlineMissingPointer(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "defs.json", `{"definitions": {}}`)

	node := map[string]any{
		"tag": map[string]any{"$ref": "defs.json#/definitions/Missing"},
	}

	err := NewRefResolver(dir).Inline(node)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrReference)
}

func TestInlineDoesNotMutateCachedDocument(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "defs.json", `{
  "definitions": {
    "Tag": {"type": "object"}
  }
}`)

	resolver := NewRefResolver(dir)

	first := map[string]any{"$ref": "defs.json#/definitions/Tag"}
	require.NoError(t, resolver.Inline(first))
	first["mutated"] = true

	second := map[string]any{"$ref": "defs.json#/definitions/Tag"}
	require.NoError(t, resolver.Inline(second))
	assert.NotContains(t, second, "mutated")
}

func TestResolvePointerEscaping(t *testing.T) {
	doc := map[string]any{
		"definitions": map[string]any{
			"a/b": map[string]any{"ok": true},
			"c~d": map[string]any{"ok": true},
		},
	}

	got, err := resolvePointer(doc, "#/definitions/a~1b")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, got)

	got, err = resolvePointer(doc, "#/definitions/c~0d")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, got)
}
