package form

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"texttovideo/config"
)

var (
	// ErrEmptyInput is returned when neither text nor a file was provided
	ErrEmptyInput = errors.New("no text or file provided")

	// ErrTextTooShort is returned when typed text is shorter than config.MinTextLength
	ErrTextTooShort = errors.New("text too short")
)

// AlertText returns the message shown to the user for a validation error
func AlertText(err error) string {
	switch {
	case errors.Is(err, ErrEmptyInput):
		return "Please enter some text or upload a file."
	case errors.Is(err, ErrTextTooShort):
		return fmt.Sprintf("Text must be at least %d characters long.", config.MinTextLength)
	case err != nil:
		return err.Error()
	}
	return ""
}

// Attachment is a file selected for upload, sent as the text_file field
type Attachment struct {
	Name    string
	Content []byte
}

// Form mirrors the submission form: a text field plus an optional file
type Form struct {
	Text     string
	File     *Attachment
	MaxChars int
}

// New creates an empty form with the given text limit
func New(maxChars int) *Form {
	if maxChars <= 0 {
		maxChars = config.DefaultMaxChars
	}
	return &Form{MaxChars: maxChars}
}

// SetText replaces the text field with typed text, truncating to the field limit
func (f *Form) SetText(text string) {
	f.Text = truncate(text, f.MaxChars)
}

// Load replaces the text field wholesale with loaded content. The field
// limit only applies to typing, so loaded text is kept as-is and the
// counter may go past the maximum.
func (f *Form) Load(text string) {
	f.Text = text
}

// Attach records the file and replaces the text field with its contents wholesale.
// No size or type checks are made; the backend decides what it accepts.
func (f *Form) Attach(a Attachment) {
	f.File = &a
	f.Load(string(a.Content))
}

// Counter returns the character counter for the current text
func (f *Form) Counter() Counter {
	return Count(Length(f.Text), f.MaxChars)
}

// Reset clears the text field and the attached file
func (f *Form) Reset() {
	f.Text = ""
	f.File = nil
}

// Validate applies the pre-submit checks. File-derived content is not
// length-checked on its own, only the trimmed text field is.
func (f *Form) Validate() error {
	return Validate(f.Text, f.File != nil)
}

// Validate checks typed text and file presence before any network access
func Validate(text string, hasFile bool) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" && !hasFile {
		return ErrEmptyInput
	}
	if trimmed != "" && Length(trimmed) < config.MinTextLength {
		return ErrTextTooShort
	}
	return nil
}

// ReadAttachment reads a local file for upload
func ReadAttachment(path string) (Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to read file: %w", err)
	}
	return Attachment{Name: filepath.Base(path), Content: data}, nil
}

func truncate(s string, max int) string {
	if max <= 0 || Length(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
