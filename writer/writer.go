// Package writer persists finished schema documents as indented JSON files.
//
// The writer is the persistence collaborator of the converter: it receives
// (filename, document) pairs and writes each document to the configured
// output directory immediately, so documents written early in a run (the
// shared _definitions.json) can be read back by stand-alone dereferencing
// later in the same run.
package writer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/garethr/openapi2jsonschema/internal/fileutil"
)

// Writer writes schema documents to a directory on disk. It implements the
// converter's Sink interface.
type Writer struct {
	dir string
}

// New creates a Writer rooted at dir, creating the directory (and any
// missing parents) if needed. Failure to create the directory is fatal to
// the run.
func New(dir string) (*Writer, error) {
	if dir == "" {
		return nil, fmt.Errorf("writer: output directory must not be empty")
	}
	if err := os.MkdirAll(dir, fileutil.TraversableByAll); err != nil {
		return nil, fmt.Errorf("writer: failed to create output directory %s: %w", dir, err)
	}
	return &Writer{dir: dir}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Write serializes doc as indented JSON and persists it under filename
// within the output directory. The document is durably written before
// Write returns.
func (w *Writer) Write(filename string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("writer: failed to marshal %s: %w", filename, err)
	}
	data = append(data, '\n')

	path := filepath.Join(w.dir, filename)
	if err := os.WriteFile(path, data, fileutil.ReadableByAll); err != nil {
		return fmt.Errorf("writer: failed to write %s: %w", filename, err)
	}
	return nil
}
