package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/garethr/openapi2jsonschema/oaserrors"
)

const (
	// MaxRefDepth is the maximum depth allowed for nested $ref resolution
	// This prevents stack overflow from deeply nested (but non-circular) references
	MaxRefDepth = 100

	// MaxCachedDocuments is the maximum number of external documents to cache
	// This prevents memory exhaustion from documents with many external references
	MaxCachedDocuments = 100

	// MaxFileSize is the maximum size (in bytes) allowed for external reference files
	// Set to 40MB; the Kubernetes _definitions.json alone runs well past 10MB
	MaxFileSize = 40 * 1024 * 1024
)

// RefResolver inlines file-based and local $ref pointers into a schema node,
// producing a stand-alone document with no remaining external references.
//
// File references (e.g. "_definitions.json#/definitions/Pet" or "Pet.json")
// are read from disk relative to the configured base directory. The shared
// definitions document must already be on disk before resolution starts; the
// converter guarantees this ordering for pre-3.0 documents.
type RefResolver struct {
	// baseDir is the base directory for resolving relative file paths
	baseDir string
	// documents caches loaded external documents by cleaned file path
	documents map[string]map[string]any
	// resolving tracks refs currently being resolved in the recursion stack,
	// keyed by owning-document path and ref string
	resolving map[string]bool
}

// NewRefResolver creates a new reference resolver rooted at baseDir.
func NewRefResolver(baseDir string) *RefResolver {
	return &RefResolver{
		baseDir:   baseDir,
		documents: make(map[string]map[string]any),
		resolving: make(map[string]bool),
	}
}

// Inline resolves and inlines every $ref anywhere inside node, mutating node
// in place. Local refs ("#/...") resolve within the document that contains
// them; file refs resolve against baseDir. Circular references and
// unresolvable targets are errors: the caller treats them as per-type
// failures rather than aborting the run.
func (r *RefResolver) Inline(node map[string]any) error {
	return r.inline(node, node, "", 0)
}

// inline recursively walks current, inlining refs. owner is the document the
// current subtree belongs to (content inlined from an external file keeps
// resolving its local refs against that file), ownerPath its identity.
func (r *RefResolver) inline(current any, owner map[string]any, ownerPath string, depth int) error {
	if depth > MaxRefDepth {
		return &oaserrors.ResourceLimitError{
			ResourceType: "ref_depth",
			Limit:        MaxRefDepth,
			Actual:       int64(depth),
			Message:      "structure too deeply nested",
		}
	}

	switch v := current.(type) {
	case map[string]any:
		if ref, ok := v["$ref"].(string); ok {
			return r.inlineRef(v, ref, owner, ownerPath, depth)
		}
		for _, val := range v {
			if err := r.inline(val, owner, ownerPath, depth+1); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range v {
			if err := r.inline(item, owner, ownerPath, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// inlineRef replaces node's contents with the resolved target of ref, then
// continues inlining inside the copied content.
func (r *RefResolver) inlineRef(node map[string]any, ref string, owner map[string]any, ownerPath string, depth int) error {
	key := ownerPath + "|" + ref
	if r.resolving[key] {
		return &oaserrors.ReferenceError{
			Ref:        ref,
			RefType:    refType(ref),
			IsCircular: true,
		}
	}
	r.resolving[key] = true
	defer delete(r.resolving, key)

	var (
		target      any
		targetOwner map[string]any
		targetPath  string
		err         error
	)

	if strings.HasPrefix(ref, "#") {
		target, err = resolvePointer(owner, ref)
		targetOwner, targetPath = owner, ownerPath
	} else {
		filePart, fragment, _ := strings.Cut(ref, "#")
		doc, cleanPath, loadErr := r.loadDocument(filePart, ref)
		if loadErr != nil {
			return loadErr
		}
		targetOwner, targetPath = doc, cleanPath
		if fragment == "" {
			target = any(doc)
		} else {
			target, err = resolvePointer(doc, "#"+fragment)
		}
	}
	if err != nil {
		return &oaserrors.ReferenceError{
			Ref:     ref,
			RefType: refType(ref),
			Cause:   err,
		}
	}

	resolved, ok := target.(map[string]any)
	if !ok {
		return &oaserrors.ReferenceError{
			Ref:     ref,
			RefType: refType(ref),
			Message: fmt.Sprintf("resolved to %T, expected an object", target),
		}
	}

	// Replace node's contents with a deep copy of the resolved object.
	// The copy keeps the source document (and its cache entry) pristine.
	for k := range node {
		delete(node, k)
	}
	for k, val := range resolved {
		node[k] = DeepCopyValue(val)
	}

	// Refs inside the inlined copy resolve against the document they came from.
	return r.inline(node, targetOwner, targetPath, depth+1)
}

// loadDocument reads and caches an external document referenced by file,
// resolving it relative to baseDir and rejecting path traversal.
func (r *RefResolver) loadDocument(file, ref string) (map[string]any, string, error) {
	filePath := file
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Clean(filepath.Join(r.baseDir, filePath))
	}

	absBase, err := filepath.Abs(r.baseDir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve base directory: %w", err)
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve file path: %w", err)
	}

	// filepath.Rel detects traversal attempts, including cross-volume paths
	// on Windows where it returns an error.
	relPath, err := filepath.Rel(absBase, absPath)
	if err != nil || strings.HasPrefix(relPath, "..") {
		return nil, "", &oaserrors.ReferenceError{
			Ref:             ref,
			RefType:         "file",
			IsPathTraversal: true,
		}
	}

	if doc, ok := r.documents[filePath]; ok {
		return doc, filePath, nil
	}

	if len(r.documents) >= MaxCachedDocuments {
		return nil, "", &oaserrors.ResourceLimitError{
			ResourceType: "cached_documents",
			Limit:        MaxCachedDocuments,
			Actual:       int64(len(r.documents)),
			Message:      "too many external references",
		}
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, "", &oaserrors.ReferenceError{
			Ref:     ref,
			RefType: "file",
			Message: "failed to read external file",
			Cause:   err,
		}
	}
	if int64(len(data)) > MaxFileSize {
		return nil, "", &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        MaxFileSize,
			Actual:       int64(len(data)),
			Message:      filePath,
		}
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, "", &oaserrors.ReferenceError{
			Ref:     ref,
			RefType: "file",
			Message: "failed to parse external file",
			Cause:   err,
		}
	}

	r.documents[filePath] = doc
	return doc, filePath, nil
}

// resolvePointer walks a JSON pointer ("#/path/to/node") within doc.
func resolvePointer(doc map[string]any, ref string) (any, error) {
	pointer := strings.TrimPrefix(ref, "#")
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return nil, fmt.Errorf("self-referential pointer %q cannot be inlined", ref)
	}

	var current any = doc
	for _, token := range strings.Split(pointer, "/") {
		token = unescapeJSONPointer(token)
		m, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("pointer segment %q does not address an object", token)
		}
		current, ok = m[token]
		if !ok {
			return nil, fmt.Errorf("pointer segment %q not found", token)
		}
	}
	return current, nil
}

// unescapeJSONPointer reverses RFC 6901 escaping (~1 before ~0).
func unescapeJSONPointer(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}

// refType classifies a ref string for error reporting.
func refType(ref string) string {
	if strings.HasPrefix(ref, "#") {
		return "local"
	}
	return "file"
}
