package converter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garethr/openapi2jsonschema/writer"
)

func readSchema(t *testing.T, dir, name string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestConvertStandAloneInlinesSharedDefinitions(t *testing.T) {
	doc := loadDoc(t, `swagger: "2.0"
definitions:
  Pet:
    type: object
    properties:
      tag:
        $ref: "#/definitions/Tag"
  Tag:
    type: object
    properties:
      label:
        type: string
`)

	dir := t.TempDir()
	sink, err := writer.New(dir)
	require.NoError(t, err)

	c := New()
	c.StandAlone = true
	result, err := c.Convert(doc, sink)
	require.NoError(t, err)
	assert.Empty(t, result.Issues)
	require.Len(t, result.Emitted, 2)

	// The rewritten reference resolved against the _definitions.json written
	// earlier in the same run and was inlined.
	pet := readSchema(t, dir, "Pet.json")
	tag := pet["properties"].(map[string]any)["tag"].(map[string]any)
	assert.NotContains(t, tag, "$ref")
	label := tag["properties"].(map[string]any)["label"].(map[string]any)
	assert.Equal(t, "string", label["type"])
}

func TestConvertStandAloneOAS3(t *testing.T) {
	doc := loadDoc(t, `openapi: "3.0.0"
components:
  schemas:
    Pet:
      type: object
      properties:
        tag:
          $ref: "#/components/schemas/Tag"
    Tag:
      type: object
      properties:
        label:
          type: string
`)

	dir := t.TempDir()
	sink, err := writer.New(dir)
	require.NoError(t, err)

	c := New()
	c.StandAlone = true
	result, err := c.Convert(doc, sink)
	require.NoError(t, err)

	// 3.0+ refs point at sibling files that only exist once the referenced
	// type has itself been emitted. Pet precedes Tag in the source, so
	// Tag.json is not on disk when Pet resolves its references: Pet fails
	// as a per-type error and the run continues.
	assert.Equal(t, 1, result.Skipped())
	require.Len(t, result.Emitted, 1)
	assert.Equal(t, "Tag", result.Emitted[0].Name)

	tag := readSchema(t, dir, "Tag.json")
	label := tag["properties"].(map[string]any)["label"].(map[string]any)
	assert.Equal(t, "string", label["type"])

	_, statErr := os.Stat(filepath.Join(dir, "Pet.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestConvertStandAloneCircularReferenceFailsType(t *testing.T) {
	doc := loadDoc(t, `swagger: "2.0"
definitions:
  Node:
    type: object
    properties:
      next:
        $ref: "#/definitions/Node"
  Leaf:
    type: object
    properties:
      label:
        type: string
`)

	dir := t.TempDir()
	sink, err := writer.New(dir)
	require.NoError(t, err)

	c := New()
	c.StandAlone = true
	result, err := c.Convert(doc, sink)
	require.NoError(t, err)

	// The self-referential type fails; the rest of the run continues.
	assert.Equal(t, 1, result.Skipped())
	require.Len(t, result.Emitted, 1)
	assert.Equal(t, "Leaf", result.Emitted[0].Name)

	_, statErr := os.Stat(filepath.Join(dir, "Node.json"))
	assert.True(t, os.IsNotExist(statErr))
}
