// Package delivery saves a finished video locally and runs the optional
// follow-ups: probing it, archiving it to S3 and announcing it on Kafka.
// Only the download itself can fail a save; follow-up failures are logged
// and returned as warnings.
package delivery

import (
	"context"
	"fmt"
	"log"

	"texttovideo/archive"
	"texttovideo/events"
	"texttovideo/media"
	"texttovideo/types"
)

// Downloader fetches a finished video into dir
type Downloader interface {
	Download(ctx context.Context, videoPath, dir string) (string, int64, error)
}

// Result describes a saved video
type Result struct {
	Path     string
	Size     int64
	Info     *media.Info
	Location string
	Warnings []string
}

// Summary is the one-line description shown after a save
func (r *Result) Summary() string {
	s := "Saved " + r.Path
	if r.Info != nil {
		s += " (" + r.Info.Summary() + ")"
	} else {
		s += " (" + media.FormatFileSize(r.Size) + ")"
	}
	if r.Location != "" {
		s += ", archived to " + r.Location
	}
	return s
}

// Saver downloads videos and runs the follow-ups
type Saver struct {
	downloader Downloader
	dir        string
	archiver   *archive.Archiver
	publisher  events.Publisher

	probe func(path string) (*media.Info, error)
}

// New creates a saver. archiver may be nil to skip archiving and publisher
// may be nil to skip events.
func New(d Downloader, dir string, archiver *archive.Archiver, publisher events.Publisher) *Saver {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Saver{
		downloader: d,
		dir:        dir,
		archiver:   archiver,
		publisher:  publisher,
		probe:      media.Probe,
	}
}

// Save downloads the job's video and runs the follow-ups
func (s *Saver) Save(ctx context.Context, jobID, videoPath string) (*Result, error) {
	path, size, err := s.downloader.Download(ctx, videoPath, s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", videoPath, err)
	}
	log.Printf("💾 Downloaded %s (%s)", path, media.FormatFileSize(size))

	res := &Result{Path: path, Size: size}

	if info, err := s.probe(path); err != nil {
		res.warn("probe", err)
	} else {
		res.Info = info
	}

	if s.archiver != nil {
		if loc, err := s.archiver.Archive(ctx, jobID, path); err != nil {
			res.warn("archive", err)
		} else {
			res.Location = loc
		}
	}

	ev := events.NewEvent(types.EventSaved, jobID)
	ev.Progress = 100
	ev.VideoPath = videoPath
	ev.Location = res.Location
	if err := s.publisher.Publish(ctx, ev); err != nil {
		res.warn("event", err)
	}

	return res, nil
}

func (r *Result) warn(step string, err error) {
	log.Printf("⚠️  %s failed for %s: %v", step, r.Path, err)
	r.Warnings = append(r.Warnings, fmt.Sprintf("%s failed: %v", step, err))
}
