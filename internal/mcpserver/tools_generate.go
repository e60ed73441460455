package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/garethr/openapi2jsonschema/converter"
	"github.com/garethr/openapi2jsonschema/loader"
	"github.com/garethr/openapi2jsonschema/writer"
)

// specInput represents the three ways a document can be provided to the
// generate tool. Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI or Swagger file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch an OpenAPI or Swagger document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

type generateInput struct {
	Spec         specInput `json:"spec"                      jsonschema:"The OpenAPI or Swagger document to convert"`
	Output       string    `json:"output,omitempty"          jsonschema:"Directory to write schema files to. Defaults to OPENAPI2JSONSCHEMA_OUTPUT or 'schemas'."`
	Prefix       string    `json:"prefix,omitempty"          jsonschema:"Reference prefix for the shared definitions file (pre-3.0 documents only)"`
	StandAlone   *bool     `json:"stand_alone,omitempty"     jsonschema:"Dereference each schema so it is self-contained"`
	Expanded     *bool     `json:"expanded,omitempty"        jsonschema:"Expand Kubernetes filenames with group and apiVersion (Deployment-apps-v1.json)"`
	Kubernetes   *bool     `json:"kubernetes,omitempty"      jsonschema:"Enable Kubernetes-specific enrichment"`
	Strict       *bool     `json:"strict,omitempty"          jsonschema:"Forbid properties not declared in the schema"`
	OnlyTopLevel *bool     `json:"only_top_level,omitempty"  jsonschema:"Emit only types carrying a group-version-kind identity"`
}

type generateIssue struct {
	Severity string `json:"severity"`
	Type     string `json:"type"`
	Message  string `json:"message"`
}

type generateOutput struct {
	Version    string          `json:"version"`
	OutputDir  string          `json:"output_dir"`
	Generated  int             `json:"generated"`
	Skipped    int             `json:"skipped"`
	Files      []string        `json:"files,omitempty"`
	IssueCount int             `json:"issue_count"`
	Issues     []generateIssue `json:"issues,omitempty"`
}

func handleGenerate(_ context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	doc, err := loadSpec(input.Spec)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	outputDir := input.Output
	if outputDir == "" {
		outputDir = cfg.Output
	}
	sink, err := writer.New(outputDir)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	conv := converter.New()
	conv.Kubernetes = boolDefault(input.Kubernetes, cfg.Kubernetes)
	conv.Strict = boolDefault(input.Strict, cfg.Strict)
	conv.StandAlone = boolDefault(input.StandAlone, cfg.StandAlone)
	conv.Expanded = boolDefault(input.Expanded, false)
	conv.OnlyTopLevel = boolDefault(input.OnlyTopLevel, false)
	if input.Prefix != "" {
		conv.Prefix = input.Prefix
	}

	result, err := conv.Convert(doc, sink)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Version:    result.Version,
		OutputDir:  outputDir,
		Generated:  len(result.Emitted),
		Skipped:    result.Skipped(),
		IssueCount: len(result.Issues),
	}
	output.Files = makeSlice[string](len(result.Emitted))
	for _, emitted := range result.Emitted {
		output.Files = append(output.Files, emitted.Filename+".json")
	}
	output.Issues = makeSlice[generateIssue](len(result.Issues))
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, generateIssue{
			Severity: issue.Severity.String(),
			Type:     issue.TypeName,
			Message:  issue.Message,
		})
	}

	return nil, output, nil
}

// loadSpec resolves the three input modes (file, url, content) into a parsed
// document.
func loadSpec(spec specInput) (*loader.Document, error) {
	l := loader.New()
	switch {
	case spec.File != "":
		return l.Load(spec.File)
	case spec.URL != "":
		return l.Load(spec.URL)
	case spec.Content != "":
		return l.LoadBytes([]byte(spec.Content))
	default:
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided")
	}
}

func boolDefault(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
