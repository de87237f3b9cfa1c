package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// chunkSize is the read size used when streaming a spreadsheet.
const chunkSize = 1024

// Downloader streams binary responses to local files.
type Downloader struct {
	client    *http.Client
	userAgent string
}

// NewDownloader creates a Downloader.
func NewDownloader(client *http.Client, userAgent string) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Downloader{client: client, userAgent: userAgent}
}

// Download writes the body of rawURL to dst, replacing any existing file.
// The body is streamed into a temporary file next to dst which is renamed
// over dst only once the transfer completes, so a failed download leaves
// the previous file untouched.
func (d *Downloader) Download(ctx context.Context, rawURL, dst string) (err error) {
	resp, err := get(ctx, d.client, rawURL, d.userAgent)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	f, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.part")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", dst, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err := copyChunks(f, resp.Body); err != nil {
		return fmt.Errorf("failed to save %s: %w", dst, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", tmp, dst, err)
	}
	return nil
}

// copyChunks streams r into w chunkSize bytes at a time.
func copyChunks(w io.Writer, r io.Reader) error {
	buf := make([]byte, chunkSize)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return fmt.Errorf("failed to write: %w", werr)
			}
		}
		if errors.Is(rerr, io.EOF) {
			return nil
		}
		if rerr != nil {
			return fmt.Errorf("failed to read response body: %w", rerr)
		}
	}
}
