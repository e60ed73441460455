package loader

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/garethr/openapi2jsonschema"
	"github.com/garethr/openapi2jsonschema/oaserrors"
)

// defaultHTTPTimeout bounds how long a URL fetch may take.
const defaultHTTPTimeout = 30 * time.Second

// Loader loads OpenAPI specification documents from files, URLs or readers.
type Loader struct {
	// UserAgent is the User-Agent string used when fetching URLs.
	// Defaults to the openapi2jsonschema user agent if not set.
	UserAgent string

	// HTTPClient is an optional custom HTTP client for URL fetches.
	HTTPClient *http.Client

	// InsecureSkipVerify disables TLS certificate verification for URL
	// fetches. Ignored when HTTPClient is provided.
	InsecureSkipVerify bool

	// Logger receives structured log output. Defaults to NopLogger.
	Logger Logger
}

// New creates a new Loader with default settings.
func New() *Loader {
	return &Loader{
		UserAgent: openapi2jsonschema.UserAgent(),
	}
}

// Load is a convenience function that loads a document from a file path or
// URL using a default Loader.
func Load(specPath string) (*Document, error) {
	return New().Load(specPath)
}

func (l *Loader) log() Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return NopLogger{}
}

// Load loads a document from a file path or an HTTP(S) URL.
func (l *Loader) Load(specPath string) (*Document, error) {
	var data []byte
	var err error

	if isURL(specPath) {
		l.log().Info("downloading schema", "url", specPath)
		data, err = l.fetchURL(specPath)
		if err != nil {
			return nil, err
		}
	} else {
		l.log().Debug("reading schema file", "path", specPath)
		data, err = os.ReadFile(specPath)
		if err != nil {
			return nil, &oaserrors.ParseError{
				Path:    specPath,
				Message: "failed to read file",
				Cause:   err,
			}
		}
	}

	return l.loadBytes(data, specPath)
}

// LoadReader loads a document from an io.Reader (typically stdin).
func (l *Loader) LoadReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &oaserrors.ParseError{
			Message: "failed to read data",
			Cause:   err,
		}
	}
	return l.loadBytes(data, "stdin")
}

// LoadBytes loads a document from a byte slice.
func (l *Loader) LoadBytes(data []byte) (*Document, error) {
	return l.loadBytes(data, "")
}

// loadBytes parses data as YAML (which also accepts JSON) into a generic
// document tree and wraps it in a Document.
func (l *Loader) loadBytes(data []byte, sourcePath string) (*Document, error) {
	l.log().Info("parsing schema", "source", sourcePath, "bytes", len(data))

	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ParseError{
			Path:    sourcePath,
			Message: "failed to parse document",
			Cause:   err,
		}
	}
	if root == nil {
		return nil, &oaserrors.ParseError{
			Path:    sourcePath,
			Message: "document is empty",
		}
	}

	return newDocument(root, data, sourcePath)
}

// isURL determines if the given path is a URL (http:// or https://)
func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// fetchURL fetches content from a URL and returns the response bytes.
func (l *Loader) fetchURL(urlStr string) ([]byte, error) {
	var client *http.Client
	switch {
	case l.HTTPClient != nil:
		client = l.HTTPClient
		if l.InsecureSkipVerify {
			l.log().Warn("InsecureSkipVerify ignored when HTTPClient provided; configure TLS on your client's transport")
		}
	case l.InsecureSkipVerify:
		transport := &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true, //nolint:gosec // User explicitly requested insecure mode
				MinVersion:         tls.VersionTLS12,
			},
		}
		client = &http.Client{
			Timeout:   defaultHTTPTimeout,
			Transport: transport,
		}
	default:
		client = &http.Client{
			Timeout: defaultHTTPTimeout,
		}
	}

	req, err := http.NewRequest(http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to create request: %w", err)
	}

	userAgent := l.UserAgent
	if userAgent == "" {
		userAgent = openapi2jsonschema.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("loader: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to read response body: %w", err)
	}
	return data, nil
}
