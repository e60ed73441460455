// Package openapi2jsonschema converts OpenAPI Specification documents into
// directories of standalone JSON Schema files, one per named type.
//
// The generated schemas are consumed by JSON-Schema-only validation tooling
// (kubeval, kubeconform and friends) that understands JSON Schema but not
// OpenAPI. The most common use is validating Kubernetes-style resource
// manifests against the schemas published by a cluster's API server.
//
// # Overview
//
// The library consists of four primary packages:
//
//   - loader: Load OpenAPI documents from files, URLs or stdin into a generic
//     document tree, and resolve file-based $ref pointers
//   - converter: Transform each named type definition into a JSON Schema
//     document (reference rewriting, Kubernetes enrichment, strictness)
//   - writer: Persist the produced schema documents as indented JSON files
//   - kubeclient: Fetch the OpenAPI document from a live Kubernetes API server
//     using a kubeconfig
//
// Both OpenAPI version families are supported:
//   - OAS 2.0 (Swagger): types under #/definitions, emitted alongside a shared
//     _definitions.json document
//   - OAS 3.x: types under #/components/schemas, emitted as self-referencing
//     same-directory files
//
// # Installation
//
// Install the CLI using go install:
//
//	go install github.com/garethr/openapi2jsonschema/cmd/openapi2jsonschema@latest
//
// # Quick Start
//
// Convert a specification file into a directory of schemas:
//
//	import (
//		"github.com/garethr/openapi2jsonschema/converter"
//		"github.com/garethr/openapi2jsonschema/loader"
//		"github.com/garethr/openapi2jsonschema/writer"
//	)
//
//	doc, err := loader.Load("swagger.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	w, err := writer.New("schemas")
//	if err != nil {
//		log.Fatal(err)
//	}
//	c := converter.New()
//	c.Kubernetes = true
//	result, err := c.Convert(doc, w)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("wrote %d schemas, skipped %d types\n", len(result.Emitted), result.Skipped())
//
// Types that cannot be converted are skipped with a recorded issue; only
// errors reading or parsing the top-level document abort a run.
package openapi2jsonschema
