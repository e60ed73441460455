package fileutil

import "os"

// ReadableByAll is the file permission mode for generated schema files
// intended to be read by validation tools and other users.
const ReadableByAll os.FileMode = 0o644

// TraversableByAll is the directory permission mode for schema output
// directories.
const TraversableByAll os.FileMode = 0o755
