package writer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("creates missing directories", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "schemas")
		w, err := New(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, w.Dir())

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("accepts an existing directory", func(t *testing.T) {
		dir := t.TempDir()
		w, err := New(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, w.Dir())
	})

	t.Run("rejects an empty directory", func(t *testing.T) {
		_, err := New("")
		require.Error(t, err)
	})

	t.Run("fails when the path is a file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "occupied")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		_, err := New(path)
		require.Error(t, err)
	})
}

func TestWriterWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	doc := map[string]any{
		"$schema": "http://json-schema.org/draft-04/schema#",
		"type":    "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
		},
	}
	require.NoError(t, w.Write("Pet.json", doc))

	data, err := os.ReadFile(filepath.Join(dir, "Pet.json"))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, doc, got)

	assert.Contains(t, string(data), "  \"type\": \"object\"", "output should be indented")
	assert.Equal(t, byte('\n'), data[len(data)-1], "output should end with a newline")
}

func TestWriterWriteUnmarshalable(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	err = w.Write("bad.json", map[string]any{"fn": func() {}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")
}
