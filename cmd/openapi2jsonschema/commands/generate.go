package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/garethr/openapi2jsonschema/converter"
	"github.com/garethr/openapi2jsonschema/internal/cliutil"
	"github.com/garethr/openapi2jsonschema/loader"
	"github.com/garethr/openapi2jsonschema/writer"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Output       string
	Prefix       string
	StandAlone   bool
	Expanded     bool
	Kubernetes   bool
	Strict       bool
	OnlyTopLevel bool
	Insecure     bool
	Verbose      bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate
// command. Returns the FlagSet and a GenerateFlags struct with bound flag
// variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Output, "o", DefaultOutputDir, "directory to write schema files to")
	fs.StringVar(&flags.Output, "output", DefaultOutputDir, "directory to write schema files to")
	fs.StringVar(&flags.Prefix, "p", converter.DefaultPrefix, "reference prefix for the shared definitions file (pre-3.0 documents)")
	fs.StringVar(&flags.Prefix, "prefix", converter.DefaultPrefix, "reference prefix for the shared definitions file (pre-3.0 documents)")
	fs.BoolVar(&flags.StandAlone, "stand-alone", false, "dereference each schema so it validates without external files")
	fs.BoolVar(&flags.Expanded, "expanded", false, "expand Kubernetes filenames with group and apiVersion (Deployment-apps-v1.json)")
	fs.BoolVar(&flags.Kubernetes, "kubernetes", false, "enable Kubernetes-specific processing")
	fs.BoolVar(&flags.Strict, "strict", false, "prohibit properties not declared in the schema")
	fs.BoolVar(&flags.OnlyTopLevel, "only-top-level", false, "emit only types carrying kind and apiVersion")
	fs.BoolVar(&flags.Insecure, "insecure-skip-tls-verify", false, "skip TLS certificate verification when fetching URLs")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose output")
	fs.BoolVar(&flags.Verbose, "verbose", false, "verbose output")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: openapi2jsonschema generate [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Convert an OpenAPI or Swagger document into JSON Schema files, one per named type.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  openapi2jsonschema generate openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  openapi2jsonschema generate -o schemas https://example.com/swagger.json\n")
		cliutil.Writef(fs.Output(), "  openapi2jsonschema generate --kubernetes --expanded --stand-alone swagger.json\n")
		cliutil.Writef(fs.Output(), "  cat swagger.yaml | openapi2jsonschema generate -\n")
		cliutil.Writef(fs.Output(), "\nOutput:\n")
		cliutil.Writef(fs.Output(), "  - One <Type>.json file per named type\n")
		cliutil.Writef(fs.Output(), "  - all.json referencing every produced schema\n")
		cliutil.Writef(fs.Output(), "  - _definitions.json with shared definitions (pre-3.0 documents only)\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Generation successful (skipped types are reported, not fatal)\n")
		cliutil.Writef(fs.Output(), "  1    Generation failed\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	fs, flags := SetupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one file path, URL, or '-' for stdin")
	}

	specPath := fs.Arg(0)
	log := NewLogger(flags.Verbose)

	l := loader.New()
	l.InsecureSkipVerify = flags.Insecure
	l.Logger = log

	var doc *loader.Document
	var err error
	if specPath == StdinFilePath {
		doc, err = l.LoadReader(os.Stdin)
	} else {
		doc, err = l.Load(specPath)
	}
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}

	sink, err := writer.New(flags.Output)
	if err != nil {
		return err
	}

	c := converter.New()
	c.Prefix = flags.Prefix
	c.StandAlone = flags.StandAlone
	c.Expanded = flags.Expanded
	c.Kubernetes = flags.Kubernetes
	c.Strict = flags.Strict
	c.OnlyTopLevel = flags.OnlyTopLevel
	c.Logger = log

	startTime := time.Now()
	result, err := c.Convert(doc, sink)
	if err != nil {
		return fmt.Errorf("generating schemas: %w", err)
	}

	cliutil.Writef(os.Stderr, "Generated %d schemas in %s (version %s)\n",
		len(result.Emitted), time.Since(startTime).Round(time.Millisecond), result.Version)
	if skipped := result.Skipped(); skipped > 0 {
		cliutil.Writef(os.Stderr, "Skipped %d types:\n", skipped)
	}
	for _, issue := range result.Issues {
		cliutil.Writef(os.Stderr, "  %s\n", issue.String())
	}

	return nil
}
