package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Download saves a finished video into dir and returns the written path and size
func (c *Client) Download(ctx context.Context, videoPath, dir string) (string, int64, error) {
	name := filepath.Base(filepath.Clean("/" + videoPath))
	if name == "/" || name == "." || strings.TrimSpace(name) == "" {
		return "", 0, fmt.Errorf("invalid video path %q", videoPath)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.DownloadURL(videoPath), nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create request: %w", err)
	}

	// Videos can outlive the API timeout; the context bounds the transfer instead.
	httpClient := *c.httpClient
	httpClient.Timeout = 0

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, readAPIError(resp)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create download dir: %w", err)
	}

	dest := filepath.Join(dir, name)
	tmp := dest + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}

	n, err := io.Copy(out, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp)
		return "", 0, fmt.Errorf("failed to write video: %w", err)
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return "", 0, fmt.Errorf("failed to save video: %w", err)
	}

	return dest, n, nil
}
