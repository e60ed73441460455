package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/garethr/openapi2jsonschema/converter"
	"github.com/garethr/openapi2jsonschema/internal/cliutil"
	"github.com/garethr/openapi2jsonschema/kubeclient"
	"github.com/garethr/openapi2jsonschema/loader"
	"github.com/garethr/openapi2jsonschema/writer"
)

// fetchTimeout bounds how long fetching the cluster's OpenAPI document may
// take.
const fetchTimeout = 60 * time.Second

// KubeFlags contains flags for the kube command
type KubeFlags struct {
	Output       string
	Prefix       string
	Kubeconfig   string
	Context      string
	StandAlone   bool
	Expanded     bool
	Strict       bool
	OnlyTopLevel bool
	Insecure     bool
	Verbose      bool
}

// SetupKubeFlags creates and configures a FlagSet for the kube command.
// Returns the FlagSet and a KubeFlags struct with bound flag variables.
func SetupKubeFlags() (*flag.FlagSet, *KubeFlags) {
	fs := flag.NewFlagSet("kube", flag.ContinueOnError)
	flags := &KubeFlags{}

	fs.StringVar(&flags.Output, "o", DefaultOutputDir, "directory to write schema files to")
	fs.StringVar(&flags.Output, "output", DefaultOutputDir, "directory to write schema files to")
	fs.StringVar(&flags.Prefix, "p", converter.DefaultPrefix, "reference prefix for the shared definitions file")
	fs.StringVar(&flags.Prefix, "prefix", converter.DefaultPrefix, "reference prefix for the shared definitions file")
	fs.StringVar(&flags.Kubeconfig, "kubeconfig", "", "path to the kubeconfig file (default: $KUBECONFIG, then ~/.kube/config)")
	fs.StringVar(&flags.Context, "context", "", "kubeconfig context to use (default: current-context)")
	fs.BoolVar(&flags.StandAlone, "stand-alone", false, "dereference each schema so it validates without external files")
	fs.BoolVar(&flags.Expanded, "expanded", false, "expand filenames with group and apiVersion (Deployment-apps-v1.json)")
	fs.BoolVar(&flags.Strict, "strict", false, "prohibit properties not declared in the schema")
	fs.BoolVar(&flags.OnlyTopLevel, "only-top-level", false, "emit only types carrying kind and apiVersion")
	fs.BoolVar(&flags.Insecure, "insecure-skip-tls-verify", false, "skip TLS certificate verification for the apiserver connection")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose output")
	fs.BoolVar(&flags.Verbose, "verbose", false, "verbose output")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: openapi2jsonschema kube [flags]\n\n")
		cliutil.Writef(fs.Output(), "Fetch the OpenAPI document from a live Kubernetes cluster and convert it\n")
		cliutil.Writef(fs.Output(), "into JSON Schema files. Kubernetes processing is always enabled.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  openapi2jsonschema kube\n")
		cliutil.Writef(fs.Output(), "  openapi2jsonschema kube --context staging -o schemas\n")
		cliutil.Writef(fs.Output(), "  openapi2jsonschema kube --kubeconfig ~/.kube/other --expanded --stand-alone\n")
	}

	return fs, flags
}

// HandleKube executes the kube command
func HandleKube(args []string) error {
	fs, flags := SetupKubeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("kube command takes no positional arguments")
	}

	log := NewLogger(flags.Verbose)

	client, err := kubeclient.New(kubeclient.Config{
		Kubeconfig:            flags.Kubeconfig,
		Context:               flags.Context,
		InsecureSkipTLSVerify: flags.Insecure,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	log.Info("fetching OpenAPI document from cluster")
	data, err := client.FetchOpenAPI(ctx)
	if err != nil {
		return err
	}

	l := loader.New()
	l.Logger = log
	doc, err := l.LoadBytes(data)
	if err != nil {
		return fmt.Errorf("parsing cluster document: %w", err)
	}

	sink, err := writer.New(flags.Output)
	if err != nil {
		return err
	}

	c := converter.New()
	c.Prefix = flags.Prefix
	c.StandAlone = flags.StandAlone
	c.Expanded = flags.Expanded
	c.Kubernetes = true
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
