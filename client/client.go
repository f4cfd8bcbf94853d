package client

import (
	"net/http"
	"net/url"
	"strings"

	"texttovideo/config"
)

// Client is a thin HTTP client for the text-to-video job API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new job API client
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = config.GetEnvOrDefault("TTV_API_URL", "http://localhost:5000")
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: config.HTTPTimeout},
	}
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PreviewURL is the inline preview source for a finished video
func (c *Client) PreviewURL(videoPath string) string {
	return c.baseURL + config.PreviewPath + url.PathEscape(videoPath)
}

// DownloadURL is the download target for a finished video
func (c *Client) DownloadURL(videoPath string) string {
	return c.baseURL + config.DownloadPath + url.PathEscape(videoPath)
}
