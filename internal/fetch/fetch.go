// Package fetch resolves a remote audio URL to a local temporary file.
//
// The fetcher performs two requests: a HEAD probe that learns the expected
// byte size (advisory only - 0 when the server omits it), and a streamed GET
// that writes the body to a temporary file carrying the URL's file
// extension, so extension-based format dispatch works against the local copy.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

const (
	// defaultProbeTimeout bounds the HEAD size probe.
	defaultProbeTimeout = 10 * time.Second

	// defaultDownloadTimeout bounds the full body retrieval. Audio files
	// can be large, so this is deliberately generous.
	defaultDownloadTimeout = 60 * time.Second
)

// Error describes a failed fetch operation.
//
// A fetch failure is fatal to the whole run: there is no partial-result or
// resume contract. Err may aggregate several underlying causes (for example
// a failed write plus a failed cleanup).
type Error struct {
	Op  string // "probe" or "download"
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeouts overrides the probe and download timeouts.
func WithTimeouts(probe, download time.Duration) Option {
	return func(c *Client) {
		c.probe.Timeout = probe
		c.download.Timeout = download
	}
}

// WithTempDir places downloaded files in dir instead of the OS temp dir.
func WithTempDir(dir string) Option {
	return func(c *Client) {
		c.dir = dir
	}
}

// Client fetches remote audio resources.
//
// Both clients follow redirects (net/http default). The probe client uses a
// short timeout; the download client a longer one.
type Client struct {
	probe    *http.Client
	download *http.Client
	dir      string
}

// New creates a fetch client.
func New(opts ...Option) *Client {
	c := &Client{
		probe:    &http.Client{Timeout: defaultProbeTimeout},
		download: &http.Client{Timeout: defaultDownloadTimeout},
		dir:      os.TempDir(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ExtensionFromURL returns the lowercase file extension of the URL's path,
// including the leading dot, or "" when the path has none.
func ExtensionFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(path.Ext(u.Path))
}

// Probe issues a HEAD request and returns the expected total size in bytes.
//
// Size is advisory: a missing or malformed Content-Length yields 0, not an
// error. Only transport-level failures are reported.
func (c *Client) Probe(ctx context.Context, rawURL string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return 0, &Error{Op: "probe", URL: rawURL, Err: err}
	}

	resp, err := c.probe.Do(req)
	if err != nil {
		return 0, &Error{Op: "probe", URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.ContentLength < 0 {
		return 0, nil
	}
	return resp.ContentLength, nil
}

// Download streams the resource body to a newly allocated temporary file and
// returns its path. The file name carries the URL's extension.
//
// The caller owns the returned file and must remove it; Download itself
// cleans up only when the transfer fails.
func (c *Client) Download(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &Error{Op: "download", URL: rawURL, Err: err}
	}

	resp, err := c.download.Do(req)
	if err != nil {
		return "", &Error{Op: "download", URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{Op: "download", URL: rawURL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	name := filepath.Join(c.dir, "audioprobe-"+uuid.NewString()+ExtensionFromURL(rawURL))
	f, err := os.Create(name)
	if err != nil {
		return "", &Error{Op: "download", URL: rawURL, Err: err}
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		// Aggregate the write failure with any cleanup failures so the
		// caller sees a single error
		merr := multierror.Append(nil, err)
		if cerr := f.Close(); cerr != nil {
			merr = multierror.Append(merr, cerr)
		}
		if rerr := os.Remove(name); rerr != nil {
			merr = multierror.Append(merr, rerr)
		}
		return "", &Error{Op: "download", URL: rawURL, Err: merr.ErrorOrNil()}
	}

	if err := f.Close(); err != nil {
		merr := multierror.Append(nil, err)
		if rerr := os.Remove(name); rerr != nil {
			merr = multierror.Append(merr, rerr)
		}
		return "", &Error{Op: "download", URL: rawURL, Err: merr.ErrorOrNil()}
	}

	return name, nil
}
