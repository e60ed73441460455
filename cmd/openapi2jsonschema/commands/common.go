// Package commands provides CLI command handlers for openapi2jsonschema.
package commands

import (
	"log/slog"
	"os"

	"github.com/garethr/openapi2jsonschema/loader"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// DefaultOutputDir is where schemas are written when no output flag is given.
const DefaultOutputDir = "schemas"

// NewLogger builds the structured logger used by the command handlers.
// Verbose enables debug-level output; diagnostics always go to stderr so
// stdout stays clean for pipelining.
func NewLogger(verbose bool) loader.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return loader.NewSlogAdapter(slog.New(handler))
}
