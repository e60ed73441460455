// Package kubeclient fetches the aggregated OpenAPI document from a live
// Kubernetes cluster.
//
// The client builds its configuration from a kubeconfig file the same way
// kubectl does: explicit path, context override and an insecure escape
// hatch for clusters with self-signed certificates.
package kubeclient

import (
	"context"
	"fmt"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/garethr/openapi2jsonschema"
)

// openAPIPath is the aggregated pre-3.0 OpenAPI endpoint served by the
// Kubernetes apiserver.
const openAPIPath = "/openapi/v2"

// Config selects the cluster to fetch from.
type Config struct {
	// Kubeconfig is the path to the kubeconfig file. When empty the
	// standard loading rules apply: $KUBECONFIG, then ~/.kube/config.
	Kubeconfig string

	// Context overrides the kubeconfig's current-context when non-empty.
	Context string

	// InsecureSkipTLSVerify disables server certificate verification.
	InsecureSkipTLSVerify bool
}

// Client talks to a single Kubernetes apiserver.
type Client struct {
	clientset kubernetes.Interface
}

// RESTConfig builds the client-go rest configuration for cfg without
// opening any connections.
func RESTConfig(cfg Config) (*rest.Config, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if cfg.Kubeconfig != "" {
		loadingRules.ExplicitPath = cfg.Kubeconfig
	}
	overrides := &clientcmd.ConfigOverrides{}
	if cfg.Context != "" {
		overrides.CurrentContext = cfg.Context
	}

	restConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("kubeclient: failed to load kubeconfig: %w", err)
	}

	if cfg.InsecureSkipTLSVerify {
		restConfig.TLSClientConfig.Insecure = true
		restConfig.TLSClientConfig.CAFile = ""
		restConfig.TLSClientConfig.CAData = nil
	}
	restConfig.UserAgent = openapi2jsonschema.UserAgent()
	return restConfig, nil
}

// New builds a Client for the cluster selected by cfg.
func New(cfg Config) (*Client, error) {
	restConfig, err := RESTConfig(cfg)
	if err != nil {
		return nil, err
	}
	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("kubeclient: failed to build clientset: %w", err)
	}
	return &Client{clientset: clientset}, nil
}

// NewForClientset wraps an existing clientset. Intended for tests.
func NewForClientset(clientset kubernetes.Interface) *Client {
	return &Client{clientset: clientset}
}

// FetchOpenAPI retrieves the cluster's aggregated OpenAPI document as raw
// JSON bytes.
func (c *Client) FetchOpenAPI(ctx context.Context) ([]byte, error) {
	data, err := c.clientset.Discovery().RESTClient().
		Get().
		AbsPath(openAPIPath).
		SetHeader("Accept", "application/json").
		Do(ctx).
		Raw()
	if err != nil {
		return nil, fmt.Errorf("kubeclient: failed to fetch %s: %w", openAPIPath, err)
	}
	return data, nil
}
