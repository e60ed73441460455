package loader

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/garethr/openapi2jsonschema/oaserrors"
)

// Document is a parsed OpenAPI specification held as a generic document tree.
// The tree is mutated in place by the converter pipeline; a Document is
// consumed exactly once.
type Document struct {
	// Root is the whole parsed specification.
	Root map[string]any

	// Version is the declared specification version, e.g. "2.0" or "3.0.2".
	Version string

	// SourcePath is the file path or URL the document was loaded from.
	SourcePath string

	components     map[string]any
	componentOrder []string
}

// IsOAS2 reports whether the document belongs to the pre-3.0 (Swagger)
// version family.
func (d *Document) IsOAS2() bool {
	return strings.Compare(d.Version, "3") < 0
}

// Components returns the container of named type definitions:
// #/definitions for pre-3.0 documents, #/components/schemas for 3.x.
func (d *Document) Components() map[string]any {
	return d.components
}

// ComponentOrder returns the type names in source-document order. Names
// added to the container after loading (synthetic Kubernetes types) are not
// included; callers track those separately.
func (d *Document) ComponentOrder() []string {
	return d.componentOrder
}

// newDocument validates the version marker and locates the components
// container. data is the original source bytes, used to recover the
// source-order of the container keys.
func newDocument(root map[string]any, data []byte, sourcePath string) (*Document, error) {
	version, err := detectVersion(root)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Root:       root,
		Version:    version,
		SourcePath: sourcePath,
	}

	if doc.IsOAS2() {
		defs, ok := root["definitions"].(map[string]any)
		if !ok {
			return nil, &oaserrors.ParseError{
				Path:    sourcePath,
				Message: "document has no definitions object",
			}
		}
		doc.components = defs
		doc.componentOrder = componentKeys(data, doc.components, "definitions")
	} else {
		comps, ok := root["components"].(map[string]any)
		if !ok {
			return nil, &oaserrors.ParseError{
				Path:    sourcePath,
				Message: "document has no components object",
			}
		}
		schemas, ok := comps["schemas"].(map[string]any)
		if !ok {
			return nil, &oaserrors.ParseError{
				Path:    sourcePath,
				Message: "document has no components.schemas object",
			}
		}
		doc.components = schemas
		doc.componentOrder = componentKeys(data, doc.components, "components", "schemas")
	}

	return doc, nil
}

// detectVersion reads the top-level version marker. Exactly one of "swagger"
// or "openapi" must be present; absence of both is a fatal input error.
func detectVersion(root map[string]any) (string, error) {
	if v, ok := root["swagger"]; ok {
		return versionString(v)
	}
	if v, ok := root["openapi"]; ok {
		return versionString(v)
	}
	return "", &oaserrors.ParseError{
		Message: "cannot convert data to JSON Schema because we could not find 'openapi' or 'swagger' keys",
	}
}

// versionString normalizes a version marker value. YAML decodes an unquoted
// `swagger: 2.0` as a float, so scalars other than strings are formatted.
func versionString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case float64, float32, int, int64:
		return fmt.Sprintf("%v", t), nil
	default:
		return "", &oaserrors.ParseError{
			Message: fmt.Sprintf("version marker has unexpected type %T", v),
		}
	}
}

// componentKeys recovers the source-order of the container keys by re-parsing
// the bytes into a yaml.Node tree, which preserves mapping order. Keys that
// cannot be recovered from the node tree (which should not happen for input
// that already unmarshaled cleanly) are appended so no type is dropped.
func componentKeys(data []byte, components map[string]any, path ...string) []string {
	keys := mappingKeys(data, path...)

	if len(keys) == len(components) {
		return keys
	}

	seen := make(map[string]bool, len(keys))
	ordered := make([]string, 0, len(components))
	for _, k := range keys {
		if _, ok := components[k]; ok && !seen[k] {
			seen[k] = true
			ordered = append(ordered, k)
		}
	}
	for k := range components {
		if !seen[k] {
			ordered = append(ordered, k)
		}
	}
	return ordered
}

// mappingKeys parses data into a yaml.Node tree and returns the keys of the
// mapping at the given path, in document order. Returns nil when the path
// does not lead to a mapping.
func mappingKeys(data []byte, path ...string) []string {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	for _, segment := range path {
		node = mappingValue(node, segment)
		if node == nil {
			return nil
		}
	}

	if node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}

// mappingValue returns the value node for key within a mapping node.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
