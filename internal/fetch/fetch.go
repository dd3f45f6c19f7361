// internal/fetch/fetch.go
//
// Best-effort retrieval of module content from the shared quick-claude
// repository. The network is never required: every failure class (dial,
// timeout, HTTP status) collapses into the same local fallback, the
// fabricator in defaults.go.

package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/mjbommar/quick-claude/internal/module"
)

// DefaultBaseURL is where default module content is published.
const DefaultBaseURL = "https://raw.githubusercontent.com/mjbommar/quick-claude/master/modules"

// fetchTimeout bounds the remote call; past it we fall back locally.
const fetchTimeout = 3 * time.Second

// maxModuleBytes caps a fetched module body.
const maxModuleBytes = 1 << 20

// Source identifies where Ensure got the module content from.
type Source int

const (
	// SourceExisting means the file was already on disk and left alone.
	SourceExisting Source = iota
	// SourceRemote means the content was downloaded.
	SourceRemote
	// SourceDefault means the local fabricator produced the content.
	SourceDefault
)

// String renders the source for user-facing messages.
func (s Source) String() string {
	switch s {
	case SourceExisting:
		return "existing"
	case SourceRemote:
		return "downloaded"
	default:
		return "default"
	}
}

// Client fetches module content over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// ClientOption configures a Client during construction.
type ClientOption func(*Client)

// WithBaseURL overrides the module source URL, mainly for tests.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient builds a fetcher with the bounded default timeout.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: fetchTimeout},
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads the published content for a (category, name) pair. Any
// failure is returned as an error; callers treat every cause the same way.
func (c *Client) Fetch(category, name string) (string, error) {
	url := fmt.Sprintf("%s/%s/%s%s", c.baseURL, category, name, module.Extension)
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch: get %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch: get %s: unexpected status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxModuleBytes))
	if err != nil {
		return "", fmt.Errorf("fetch: read %s: %w", url, err)
	}
	return string(data), nil
}

// Ensure makes sure the module file at path exists: an existing file is left
// untouched, otherwise remote content is tried first and the fabricator
// backstops any failure. The fallback is unconditional and not retried.
func (c *Client) Ensure(path, category, name string) (Source, error) {
	if _, err := os.Stat(path); err == nil {
		return SourceExisting, nil
	}
	if content, err := c.Fetch(category, name); err == nil {
		if err := writeModuleFile(path, content); err != nil {
			return SourceRemote, err
		}
		return SourceRemote, nil
	}
	if err := WriteDefault(path, name, category); err != nil {
		return SourceDefault, err
	}
	return SourceDefault, nil
}

func writeModuleFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("fetch: create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("fetch: write %s: %w", path, err)
	}
	return nil
}

// Essential is one (category, name) pair installed by `cm init`.
type Essential struct {
	Category string
	Name     string
}

// Essentials is the module set every fresh project starts with.
var Essentials = []Essential{
	{"context", "base-instructions"},
	{"context", "project-structure"},
	{"behavior", "flow-state"},
	{"task", "todo-management"},
	{"tech", "python-modern"},
}

// EnsureReport pairs an essential module with how it was provisioned.
type EnsureReport struct {
	Essential
	Source Source
	Err    error
}

// EnsureEssentials provisions the essential module set under modulesDir and
// reports per-module outcomes. Individual failures are reported, not fatal.
func (c *Client) EnsureEssentials(modulesDir string) []EnsureReport {
	reports := make([]EnsureReport, 0, len(Essentials))
	for _, essential := range Essentials {
		path := filepath.Join(modulesDir, essential.Category, essential.Name+module.Extension)
		source, err := c.Ensure(path, essential.Category, essential.Name)
		reports = append(reports, EnsureReport{Essential: essential, Source: source, Err: err})
	}
	return reports
}
