package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPClient is the part of *http.Client the loader uses.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPOptions configures a FromHTTP loader.
type HTTPOptions struct {
	Timeout time.Duration
	// Headers are added to every request, e.g. an Authorization header.
	Headers map[string]string
	// MaxBytes caps the response size. Zero means no cap.
	MaxBytes int64
}

func DefaultHTTPOptions() HTTPOptions {
	return HTTPOptions{
		Timeout:  30 * time.Second,
		MaxBytes: 1 << 20,
	}
}

// FromHTTP fetches a rule from an HTTP(S) URL on every GetReader call.
type FromHTTP struct {
	url       string
	sourceURL *url.URL
	client    HTTPClient
	options   HTTPOptions
}

func NewFromHTTP(rawURL string) (*FromHTTP, error) {
	return NewFromHTTPWithOptions(rawURL, DefaultHTTPOptions())
}

func NewFromHTTPWithOptions(rawURL string, options HTTPOptions) (*FromHTTP, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidPath, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidPath)
	}

	return &FromHTTP{
		url:       rawURL,
		sourceURL: u,
		client:    &http.Client{Timeout: options.Timeout},
		options:   options,
	}, nil
}

func (l *FromHTTP) String() string {
	return fmt.Sprintf("loader.FromHTTP{URL: %s}", l.url)
}

func (l *FromHTTP) GetReader() (io.ReadCloser, error) {
	return l.GetReaderWithContext(context.Background())
}

// GetReaderWithContext performs the request bound to ctx. The caller closes the
// returned body.
func (l *FromHTTP) GetReaderWithContext(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	for k, v := range l.options.Headers {
		req.Header.Set(k, v)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: HTTP %d from %s", ErrScriptNotAvailable, resp.StatusCode, l.url)
	}

	if l.options.MaxBytes > 0 {
		return &limitedBody{
			Reader: io.LimitReader(resp.Body, l.options.MaxBytes),
			Closer: resp.Body,
		}, nil
	}
	return resp.Body, nil
}

func (l *FromHTTP) GetSourceURL() *url.URL {
	return l.sourceURL
}

type limitedBody struct {
	io.Reader
	io.Closer
}
