package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Article is text pulled from a web page or feed item to seed the form
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	FetchedAt   time.Time `json:"fetched_at"`
	Author      string    `json:"author,omitempty"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Text        string    `json:"text"`
}

// GenerateID creates a unique ID from URL
func GenerateID(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])[:16]
}
