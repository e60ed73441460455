package converter

import (
	"fmt"

	"github.com/garethr/openapi2jsonschema/internal/issues"
	"github.com/garethr/openapi2jsonschema/internal/severity"
	"github.com/garethr/openapi2jsonschema/loader"
	"github.com/garethr/openapi2jsonschema/oaserrors"
)

// Severity indicates the severity level of a conversion issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about conversion choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates best-effort transformations that did not skip the type
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates a type that was skipped and excluded from output
	SeverityError = severity.SeverityError
)

// TypeIssue represents a single per-type conversion problem
type TypeIssue = issues.Issue

const (
	// DefaultPrefix is the default reference prefix for pre-3.0 documents.
	DefaultPrefix = "_definitions.json"

	// SharedDefinitionsFilename is the name of the shared definitions
	// document written for pre-3.0 input.
	SharedDefinitionsFilename = "_definitions.json"

	// AggregateFilename is the name of the aggregate index document.
	AggregateFilename = "all.json"

	// SchemaURI is the JSON Schema draft-4 meta-schema identifier stamped
	// onto every produced schema document.
	SchemaURI = "http://json-schema.org/draft-04/schema#"
)

// Sink receives finished schema documents from the converter. Documents must
// be durably persisted before Write returns: for pre-3.0 input the shared
// definitions document is written before any per-type processing begins, so
// that stand-alone dereferencing can read it back from Dir().
type Sink interface {
	// Write persists doc under the given filename (including extension).
	Write(filename string, doc any) error

	// Dir returns the directory file references resolve against.
	Dir() string
}

// EmittedType records one successfully produced schema document.
type EmittedType struct {
	// Name is the qualified type name (e.g. "io.k8s.api.core.v1.Pod")
	Name string
	// Filename is the output filename without the .json extension
	Filename string
}

// Result contains the results of converting a specification into schemas.
type Result struct {
	// Version is the source specification version string
	Version string
	// Emitted lists the types written, in emission order. The aggregate
	// index references exactly these, in this order.
	Emitted []EmittedType
	// Issues contains all per-type problems encountered. Issues with
	// SeverityError correspond to skipped types.
	Issues []TypeIssue
	// SharedDefinitions is true when a _definitions.json document was
	// produced (pre-3.0 input only)
	SharedDefinitions bool
}

// Skipped returns the number of types skipped due to errors.
func (r *Result) Skipped() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Converter transforms the named type definitions of an OpenAPI document
// into standalone JSON Schema documents.
type Converter struct {
	// Prefix is prepended to rewritten references in pre-3.0 documents
	// (default "_definitions.json")
	Prefix string
	// StandAlone dereferences and inlines all $ref pointers so each schema
	// validates without external files
	StandAlone bool
	// Expanded derives group/version-expanded filenames for Kubernetes types
	Expanded bool
	// Kubernetes enables the Kubernetes-specific enrichment steps
	Kubernetes bool
	// Strict prohibits properties not declared in the schema
	// (additionalProperties: false)
	Strict bool
	// OnlyTopLevel emits only types whose properties carry both 'kind' and
	// 'apiVersion' fields (Kubernetes mode only)
	OnlyTopLevel bool
	// UnsupportedKinds overrides the deny-list of Kinds rejected in
	// Kubernetes stand-alone mode. Nil means DefaultUnsupportedKinds.
	UnsupportedKinds []string
	// Logger receives structured log output. Defaults to a no-op logger.
	Logger loader.Logger
}

// New creates a new Converter instance with default settings.
func New() *Converter {
	return &Converter{
		Prefix: DefaultPrefix,
	}
}

func (c *Converter) log() loader.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return loader.NopLogger{}
}

// run threads the per-run state through the pipeline so the individual
// stages stay pure functions over document nodes.
type run struct {
	c      *Converter
	doc    *loader.Document
	sink   Sink
	result *Result
	order  []string
}

// Convert drives the whole pipeline over every type in the document and
// writes the produced schema documents to sink. A returned error is fatal;
// per-type failures are recorded on the Result instead.
func (c *Converter) Convert(doc *loader.Document, sink Sink) (*Result, error) {
	if doc == nil || doc.Root == nil {
		return nil, &oaserrors.ConfigError{Message: "no document to convert"}
	}
	if sink == nil {
		return nil, &oaserrors.ConfigError{Message: "no output sink configured"}
	}

	r := &run{
		c:    c,
		doc:  doc,
		sink: sink,
		result: &Result{
			Version: doc.Version,
		},
		order: append([]string(nil), doc.ComponentOrder()...),
	}

	if doc.IsOAS2() {
		if err := r.emitSharedDefinitions(); err != nil {
			return nil, err
		}
	}

	c.log().Info("generating individual schemas", "types", len(r.order))
	for _, name := range r.order {
		r.convertType(name)
	}

	c.log().Info("generating schema for all types")
	if err := sink.Write(AggregateFilename, r.aggregateIndex()); err != nil {
		return nil, fmt.Errorf("writing aggregate schema: %w", err)
	}

	return r.result, nil
}

// emitSharedDefinitions applies the container-level enrichment and strictness
// passes, then persists the shared definitions document. It must complete
// before any per-type processing so stand-alone dereferencing can resolve
// references against the written file.
func (r *run) emitSharedDefinitions() error {
	components := r.doc.Components()
	r.c.log().Info("generating shared definitions")

	if r.c.Kubernetes {
		r.order = injectSyntheticTypes(components, r.order)
		r.result.Issues = append(r.result.Issues, enrichGroupVersionKind(components, r.order, r.c.log())...)
	}
	if r.c.Strict {
		SetAdditionalProperties(components)
	}

	shared := map[string]any{"definitions": components}
	if err := r.sink.Write(SharedDefinitionsFilename, shared); err != nil {
		return fmt.Errorf("writing shared definitions: %w", err)
	}
	r.result.SharedDefinitions = true
	return nil
}

// convertType runs the per-type pipeline for one named definition. Failures
// are recorded as issues; the type is then excluded from the emitted list and
// the aggregate index.
func (r *run) convertType(name string) {
	c := r.c
	log := c.log()
	kind := Kind(name)

	definition, ok := r.doc.Components()[name].(map[string]any)
	if !ok {
		r.fail(name, kind, "type definition is not an object", nil)
		return
	}

	// Filtering that skips without an error: non-top-level types.
	if c.Kubernetes && c.OnlyTopLevel && !isTopLevelType(definition) {
		log.Debug("skipping type without kind and apiVersion", "type", name)
		return
	}

	filename, err := c.Filename(name)
	if err != nil {
		r.fail(name, kind, "unable to expand type name", err)
		return
	}

	if err := c.checkSupported(name); err != nil {
		r.fail(name, kind, "unsupported type", err)
		return
	}

	log.Debug("processing type", "type", name, "filename", filename)

	definition["$schema"] = SchemaURI
	if _, ok := definition["type"]; !ok {
		definition["type"] = "object"
	}
	if c.Strict {
		definition["additionalProperties"] = false
	}

	if r.doc.IsOAS2() {
		rewriteRefs(definition, oas2Rewriter(c.Prefix))
	} else {
		rewriteRefs(definition, oas3Rewriter())
	}

	if c.StandAlone {
		resolver := loader.NewRefResolver(r.sink.Dir())
		if err := resolver.Inline(definition); err != nil {
			r.fail(name, kind, "error processing type", err)
			return
		}
	}

	// Dereferencing may have replaced the properties tree; re-read it for
	// the per-type passes.
	if props, ok := definition["properties"].(map[string]any); ok {
		if c.Strict {
			SetAdditionalProperties(props)
		}
		if c.Kubernetes {
			ReplaceIntOrString(props)
			AllowNullOptionalFields(props, requiredFields(definition))
		}
	}

	log.Debug("generating schema file", "filename", filename+".json")
	if err := r.sink.Write(filename+".json", definition); err != nil {
		r.fail(name, kind, "error processing type", err)
		return
	}

	r.result.Emitted = append(r.result.Emitted, EmittedType{Name: name, Filename: filename})
}

// fail records a per-type error and logs it with the offending Kind.
func (r *run) fail(name, kind, message string, err error) {
	r.c.log().Error("error processing type", "kind", kind, "type", name, "error", err)
	r.result.Issues = append(r.result.Issues, TypeIssue{
		TypeName: name,
		Kind:     kind,
		Message:  message,
		Severity: SeverityError,
		Err:      err,
	})
}

// aggregateIndex builds the all.json document referencing every emitted
// type, in emission order. For 3.0+ documents each reference uses the same
// filename the individual schema was written under, so expanded filenames
// stay consistent between the index and the files on disk.
func (r *run) aggregateIndex() map[string]any {
	refs := make([]any, 0, len(r.result.Emitted))
	for _, emitted := range r.result.Emitted {
		var ref string
		if r.doc.IsOAS2() {
			ref = r.c.Prefix + "#/definitions/" + emitted.Name
		} else {
			ref = emitted.Filename + ".json"
		}
		refs = append(refs, map[string]any{"$ref": ref})
	}
	return map[string]any{"oneOf": refs}
}

// requiredFields reads a schema node's required list as strings.
func requiredFields(definition map[string]any) []string {
	list, ok := definition["required"].([]any)
	if !ok {
		return nil
	}
	required := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			required = append(required, s)
		}
	}
	return required
}

// isTopLevelType reports whether a definition describes a manifest-like
// top-level type: one whose properties carry both kind and apiVersion
// fields. A definition without a properties object cannot be classified and
// counts as top-level so it is never silently dropped.
func isTopLevelType(definition map[string]any) bool {
	props, ok := definition["properties"].(map[string]any)
	if !ok {
		return true
	}
	_, hasKind := props["kind"]
	_, hasAPIVersion := props["apiVersion"]
	return hasKind && hasAPIVersion
}
