package devserver

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxChunkLength is the number of characters per narration chunk
	MaxChunkLength = 500

	// WordsPerMinute is the narration speed used for duration estimates
	WordsPerMinute = 150
)

// ChunkText splits text into chunks of at most maxLength characters on
// sentence boundaries (". "). A single sentence longer than maxLength is
// kept whole.
func ChunkText(text string, maxLength int) []string {
	if maxLength <= 0 {
		maxLength = MaxChunkLength
	}

	sentences := strings.Split(strings.ReplaceAll(text, "\n", " "), ". ")
	var chunks []string
	current := ""

	for i, sentence := range sentences {
		// Add period back if it was removed by the split
		if !strings.HasSuffix(sentence, ".") && i != len(sentences)-1 {
			sentence += "."
		}

		if current == "" {
			current = sentence
			continue
		}
		if utf8.RuneCountInString(current+" "+sentence) > maxLength {
			chunks = append(chunks, strings.TrimSpace(current))
			current = sentence
			continue
		}
		current += " " + sentence
	}

	if current != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	return chunks
}

// EstimateDuration returns the narration length in seconds for text
func EstimateDuration(text string) float64 {
	words := len(strings.Fields(text))
	return float64(words) / WordsPerMinute * 60
}
