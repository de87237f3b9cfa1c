package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
)

// maxPageSize bounds the HTML read from a list page.
const maxPageSize = 10 * 1024 * 1024

// Fetcher retrieves list pages and decodes them to UTF-8.
// The site serves Shift_JIS; the charset is taken from the Content-Type
// header or the meta tag unless an encoding is forced.
type Fetcher struct {
	client    *http.Client
	userAgent string
	encoding  string
}

// NewFetcher creates a Fetcher. An empty encoding enables detection.
func NewFetcher(client *http.Client, userAgent, encoding string) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, userAgent: userAgent, encoding: encoding}
}

// FetchPage downloads rawURL and parses it as a Page.
// Non-2xx responses are errors.
func (f *Fetcher) FetchPage(ctx context.Context, rawURL string) (*Page, error) {
	resp, err := get(ctx, f.client, rawURL, f.userAgent)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, maxPageSize)
	r, err := f.decoder(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	return NewPage(r)
}

func (f *Fetcher) decoder(body io.Reader, contentType string) (io.Reader, error) {
	if f.encoding == "" {
		r, err := charset.NewReader(body, contentType)
		if err != nil {
			return nil, fmt.Errorf("failed to detect charset: %w", err)
		}
		return r, nil
	}
	enc, err := htmlindex.Get(f.encoding)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", f.encoding, err)
	}
	return enc.NewDecoder().Reader(body), nil
}

// get issues a GET request and rejects non-2xx responses.
// The caller closes the body of the returned response.
func get(ctx context.Context, client *http.Client, rawURL, userAgent string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("<Response [%d]> %s", e.StatusCode, e.URL)
}
