package main

import (
	"fmt"
	"os"

	"github.com/garethr/openapi2jsonschema"
	"github.com/garethr/openapi2jsonschema/cmd/openapi2jsonschema/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("openapi2jsonschema v%s\n", openapi2jsonschema.Version())
	case "help", "-h", "--help":
		printUsage()
	case "generate":
		if err := commands.HandleGenerate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "kube":
		if err := commands.HandleKube(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		// Historical invocation style: openapi2jsonschema [flags] <file|url>.
		if err := commands.HandleGenerate(os.Args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printUsage() {
	fmt.Println("openapi2jsonschema - convert OpenAPI documents to JSON Schema files")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  openapi2jsonschema <command> [flags] [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  generate    Convert an OpenAPI or Swagger document into JSON Schema files")
	fmt.Println("  kube        Fetch and convert the OpenAPI document from a Kubernetes cluster")
	fmt.Println("  mcp         Run an MCP server over stdio exposing schema generation")
	fmt.Println("  version     Print version information")
	fmt.Println("  help        Show this help message")
	fmt.Println()
	fmt.Println("Run 'openapi2jsonschema <command> -h' for command-specific flags.")
	fmt.Println()
	fmt.Println("Invoking with a file path, URL, or flags directly runs the generate command:")
	fmt.Println("  openapi2jsonschema --kubernetes swagger.json")
}
