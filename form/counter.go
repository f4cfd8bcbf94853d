package form

import (
	"fmt"
	"unicode/utf8"

	"texttovideo/config"
)

// Level is the visual class of the character counter
type Level string

const (
	LevelNormal  Level = "normal"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Counter is the rendered character counter for the text field
type Counter struct {
	Length int
	Max    int
	Level  Level
}

// Text renders the counter as "len/max characters"
func (c Counter) Text() string {
	return fmt.Sprintf("%d/%d characters", c.Length, c.Max)
}

// Count classifies a text length against the field maximum.
// danger if length > 0.9*max, warning if length > 0.75*max, otherwise normal.
func Count(length, max int) Counter {
	c := Counter{Length: length, Max: max, Level: LevelNormal}

	switch l, m := float64(length), float64(max); {
	case l > m*config.CounterDangerRatio:
		c.Level = LevelDanger
	case l > m*config.CounterWarningRatio:
		c.Level = LevelWarning
	}
	return c
}

// Length counts characters the way the counter and validation see them
func Length(s string) int {
	return utf8.RuneCountInString(s)
}
