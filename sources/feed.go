package sources

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"texttovideo/types"

	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"
)

// FromFeed loads the newest item of an RSS/Atom feed. feedInput may be a
// preset name or a URL. The item's linked page is extracted when possible;
// otherwise the item's own content or description is used.
func FromFeed(ctx context.Context, feedInput string) (*types.Article, error) {
	feedURL := ResolveFeedURL(strings.TrimSpace(feedInput))

	parser := gofeed.NewParser()
	parser.Client = httpClient
	parser.UserAgent = userAgent

	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	item := newestItem(feed.Items)
	if item == nil {
		return nil, fmt.Errorf("feed %s has no items", feedURL)
	}

	if item.Link != "" {
		article, err := FromArticle(ctx, item.Link)
		if err == nil {
			if article.Title == "" {
				article.Title = item.Title
			}
			article.PublishedAt = publishedAt(item)
			return article, nil
		}
		log.Printf("⚠️  Failed to extract %s, using feed content: %v", item.Link, err)
	}

	return fromItem(item)
}

// fromItem builds an article from the feed item's own content
func fromItem(item *gofeed.Item) (*types.Article, error) {
	body := item.Content
	if body == "" {
		body = item.Description
	}

	text := htmlText(body, item.Link)
	if text == "" {
		return nil, ErrNoText
	}

	id := item.GUID
	if id == "" && item.Link != "" {
		id = types.GenerateID(item.Link)
	}

	author := ""
	if item.Author != nil {
		author = item.Author.Name
	}

	return &types.Article{
		ID:          id,
		Title:       item.Title,
		URL:         item.Link,
		PublishedAt: publishedAt(item),
		FetchedAt:   time.Now(),
		Author:      author,
		Excerpt:     item.Description,
		Text:        text,
	}, nil
}

// newestItem picks the item with the latest publish date, or the first item
// when none carry dates
func newestItem(items []*gofeed.Item) *gofeed.Item {
	var newest *gofeed.Item
	for _, item := range items {
		if newest == nil || publishedAt(item).After(publishedAt(newest)) {
			newest = item
		}
	}
	return newest
}

func publishedAt(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Time{}
}

// htmlText strips markup from a feed item body
func htmlText(body, link string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	if !strings.Contains(body, "<") {
		return cleanText(body)
	}

	base, err := url.Parse(link)
	if err != nil {
		base = &url.URL{}
	}

	page := "<html><body><article>" + body + "</article></body></html>"
	extracted, err := readability.FromReader(strings.NewReader(page), base)
	if err != nil || strings.TrimSpace(extracted.TextContent) == "" {
		return cleanText(body)
	}
	return cleanText(extracted.TextContent)
}
