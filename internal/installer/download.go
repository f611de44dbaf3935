package installer

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	// downloadTimeout bounds one whole transfer.
	downloadTimeout = 5 * time.Minute
	// maxRedirects caps the redirect chain GitHub release assets use.
	maxRedirects = 10
	// userAgent identifies the installer to the release host.
	userAgent = "dune-install/1.0"
)

// Downloader transfers release assets over HTTPS. A failed transfer is
// final; there is no retry, the user simply reruns the installer.
type Downloader struct {
	client *http.Client
}

// NewDownloader creates a downloader that refuses TLS below 1.2 and
// follows at most ten redirects.
func NewDownloader() *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: downloadTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
				Proxy: http.ProxyFromEnvironment,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
	}
}

// Fetch downloads url to destPath. The body lands in a temp file next
// to the destination first, so destPath only ever holds a complete
// download.
func (d *Downloader) Fetch(ctx context.Context, url, destPath string) error {
	resp, err := d.get(ctx, url)
	if err != nil {
		return &DownloadError{URL: url, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &DownloadError{URL: url, StatusCode: resp.StatusCode}
	}

	if err := writeAtomic(destPath, resp.Body); err != nil {
		return &DownloadError{URL: url, Cause: err}
	}
	return nil
}

// FetchOptional downloads url to destPath when the asset exists. A 404
// reports absence instead of failure; any other problem is an error.
func (d *Downloader) FetchOptional(ctx context.Context, url, destPath string) (bool, error) {
	resp, err := d.get(ctx, url)
	if err != nil {
		return false, &DownloadError{URL: url, Cause: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return false, nil
	default:
		return false, &DownloadError{URL: url, StatusCode: resp.StatusCode}
	}

	if err := writeAtomic(destPath, resp.Body); err != nil {
		return false, &DownloadError{URL: url, Cause: err}
	}
	return true, nil
}

func (d *Downloader) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	return d.client.Do(req)
}

// writeAtomic streams body into destPath via a sibling temp file and a
// rename.
func writeAtomic(destPath string, body io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(destPath), filepath.Base(destPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	cleanup := true
	defer func() {
		tmp.Close()
		if cleanup {
			os.Remove(tmp.Name())
		}
	}()

	if _, err := io.Copy(tmp, body); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), destPath); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	cleanup = false
	return nil
}
