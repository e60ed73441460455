// Package converter transforms OpenAPI type definitions into standalone
// JSON Schema documents.
//
// The converter drives a single pass over the named type definitions of a
// loaded specification. Each definition flows through a pipeline of
// structural rewrites: $ref rewriting to a file-based reference scheme,
// optional dereferencing for stand-alone output, Kubernetes-specific
// enrichment (apiVersion/kind enums, int-or-string normalization, nullable
// relaxation), and additionalProperties tightening in strict mode. A naming
// policy derives the output filename from the qualified type name and filters
// out unsupported or deprecated types.
//
// # Quick Start
//
//	doc, err := loader.Load("swagger.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	w, err := writer.New("schemas")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	c := converter.New()
//	c.Kubernetes = true
//	c.Strict = true
//	result, err := c.Convert(doc, w)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, issue := range result.Issues {
//		fmt.Println(issue)
//	}
//
// # Error Model
//
// Only a fatal problem with the whole document aborts Convert. A failure
// while processing a single type (unresolvable reference, unexpandable name,
// deny-listed Kind) records an issue on the Result, skips that type, and the
// run continues. Skipped types never appear in the aggregate all.json index.
//
// # Related Packages
//
//   - [github.com/garethr/openapi2jsonschema/loader] - Load specifications before conversion
//   - [github.com/garethr/openapi2jsonschema/writer] - Persist produced schema documents
//   - [github.com/garethr/openapi2jsonschema/kubeclient] - Fetch specifications from a cluster
package converter
