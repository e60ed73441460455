// This file implements the naming and filtering policy: deriving an output
// filename from a qualified type name and rejecting unsupported or
// deprecated types.

package converter

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/garethr/openapi2jsonschema/oaserrors"
)

// DefaultUnsupportedKinds lists the Kinds rejected in Kubernetes stand-alone
// mode. These types recursively embed JSON-Schema-shaped data that the
// pipeline cannot safely rewrite. Matching is case-insensitive.
var DefaultUnsupportedKinds = []string{
	"jsonschemaprops",
	"jsonschemapropsorarray",
	"customresourcevalidation",
	"customresourcedefinition",
	"customresourcedefinitionspec",
	"customresourcedefinitionlist",
	"jsonschemapropsorstringarray",
	"jsonschemapropsorbool",
}

// kindFolder performs Unicode case folding for case-insensitive Kind
// comparisons.
var kindFolder = cases.Fold()

// Kind returns the last dot-delimited segment of a qualified type name.
func Kind(name string) string {
	segments := strings.Split(name, ".")
	return segments[len(segments)-1]
}

// Filename derives the output filename (without extension) for a qualified
// type name. Outside Kubernetes expanded mode the filename is simply the
// Kind. With Kubernetes and expansion enabled the group and apiVersion
// segments are folded in: "io.k8s.api.core.v1.Pod" becomes "Pod-v1" (the
// core and api groups are elided) and "io.k8s.api.apps.v1.Deployment"
// becomes "Deployment-apps-v1". Names with fewer than three segments cannot
// be expanded and return an ExpansionError.
func (c *Converter) Filename(name string) (string, error) {
	segments := strings.Split(name, ".")
	kind := segments[len(segments)-1]

	if !c.Kubernetes || !c.Expanded {
		return kind, nil
	}
	if len(segments) < 3 {
		return "", &oaserrors.ExpansionError{Name: name}
	}

	group := strings.ToLower(segments[len(segments)-3])
	apiVersion := strings.ToLower(segments[len(segments)-2])
	if group == "core" || group == "api" {
		return kind + "-" + apiVersion, nil
	}
	return kind + "-" + group + "-" + apiVersion, nil
}

// checkSupported applies the Kubernetes-only rejection filters: the
// deprecated pkg-namespace heuristic and, in stand-alone mode, the deny-list
// of Kinds. A nil return means the type may be processed.
func (c *Converter) checkSupported(name string) error {
	if !c.Kubernetes {
		return nil
	}

	// Types under the historical *.kubernetes.pkg.* namespace are all
	// deprecated. Names with fewer than four segments cannot match and are
	// not deprecated.
	segments := strings.Split(name, ".")
	if len(segments) > 3 && segments[2] == "kubernetes" && segments[3] == "pkg" {
		return &oaserrors.UnsupportedTypeError{
			Name:   name,
			Reason: "due to use of pkg namespace",
		}
	}

	if c.StandAlone {
		folded := kindFolder.String(Kind(name))
		for _, denied := range c.unsupportedKinds() {
			if kindFolder.String(denied) == folded {
				return &oaserrors.UnsupportedTypeError{Name: Kind(name)}
			}
		}
	}

	return nil
}

// unsupportedKinds returns the active deny-list.
func (c *Converter) unsupportedKinds() []string {
	if c.UnsupportedKinds != nil {
		return c.UnsupportedKinds
	}
	return DefaultUnsupportedKinds
}
