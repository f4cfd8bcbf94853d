// Package media inspects finished videos with ffprobe and formats their
// size and duration for display.
package media

import (
	"encoding/json"
	"fmt"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Info is what ffprobe reports about a video file
type Info struct {
	Duration float64 // seconds
	Size     int64   // bytes
	Width    int
	Height   int
	Codec    string
}

// probe runs ffprobe and returns its JSON output
var probe = func(path string) (string, error) {
	return ffmpeg.Probe(path)
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
		Size     string `json:"size"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

// Probe reads duration, size and the first video stream's dimensions
func Probe(path string) (*Info, error) {
	out, err := probe(path)
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}
	return parseProbe(out)
}

func parseProbe(out string) (*Info, error) {
	var raw probeOutput
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &Info{}
	if raw.Format.Duration != "" {
		d, err := strconv.ParseFloat(raw.Format.Duration, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", raw.Format.Duration, err)
		}
		info.Duration = d
	}
	if raw.Format.Size != "" {
		n, err := strconv.ParseInt(raw.Format.Size, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", raw.Format.Size, err)
		}
		info.Size = n
	}

	for _, s := range raw.Streams {
		if s.CodecType == "video" {
			info.Width = s.Width
			info.Height = s.Height
			info.Codec = s.CodecName
			break
		}
	}

	return info, nil
}

// Summary renders info as "1:05 · 1.5 MB · 1280x720 h264"
func (i *Info) Summary() string {
	s := FormatDuration(i.Duration) + " · " + FormatFileSize(i.Size)
	if i.Width > 0 && i.Height > 0 {
		s += fmt.Sprintf(" · %dx%d", i.Width, i.Height)
		if i.Codec != "" {
			s += " " + i.Codec
		}
	}
	return s
}
