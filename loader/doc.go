// Package loader loads OpenAPI Specification documents into generic document
// trees for schema conversion.
//
// A loaded [Document] keeps the specification as nested map[string]any /
// []any / scalar values, the way the YAML parser produced it. JSON input is
// handled by the same path since JSON is valid YAML. The loader also records
// the source-order of the named type definitions, which the converter uses to
// keep the aggregate index listing in document order (Go maps do not preserve
// insertion order).
//
// Documents can be loaded from a local file path, an HTTP(S) URL, an
// io.Reader (stdin), or a byte slice:
//
//	doc, err := loader.Load("https://example.com/swagger.json")
//	doc, err := loader.Load("swagger.yaml")
//	doc, err := loader.New().LoadReader(os.Stdin)
//
// The package also provides [RefResolver], which inlines file-based $ref
// pointers for stand-alone schema output. The resolver reads referenced files
// (such as the shared _definitions.json) from a base directory on disk,
// guarding against path traversal, oversized files and unbounded recursion.
package loader
