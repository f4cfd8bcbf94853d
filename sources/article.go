// Package sources loads narration text from places other than the keyboard:
// a web article (via readability) or the newest item of an RSS/Atom feed.
package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"texttovideo/config"
	"texttovideo/types"

	readability "github.com/go-shiori/go-readability"
)

const (
	maxPageBytes = 5 * 1024 * 1024
	userAgent    = "texttovideo/1.0 (+https://github.com)"
)

// ErrNoText is returned when a page or feed item yields no readable text
var ErrNoText = errors.New("no readable text found")

var httpClient = &http.Client{Timeout: config.HTTPTimeout}

// FromArticle fetches a web page and extracts its main text
func FromArticle(ctx context.Context, rawURL string) (*types.Article, error) {
	pageURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") {
		return nil, fmt.Errorf("invalid article URL %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch article: status %d", resp.StatusCode)
	}

	extracted, err := readability.FromReader(io.LimitReader(resp.Body, maxPageBytes), pageURL)
	if err != nil {
		return nil, fmt.Errorf("readability extraction failed: %w", err)
	}

	text := cleanText(extracted.TextContent)
	if text == "" {
		return nil, ErrNoText
	}

	article := &types.Article{
		ID:        types.GenerateID(pageURL.String()),
		Title:     strings.TrimSpace(extracted.Title),
		URL:       pageURL.String(),
		FetchedAt: time.Now(),
		Author:    extracted.Byline,
		Excerpt:   extracted.Excerpt,
		Text:      text,
	}

	log.Printf("✓ Extracted: %s", article.Title)
	return article, nil
}

// cleanText trims every line, collapses inner whitespace and keeps a single
// blank line between paragraphs
func cleanText(s string) string {
	var paragraphs []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			paragraphs = append(paragraphs, line)
		}
	}
	return strings.Join(paragraphs, "\n\n")
}
