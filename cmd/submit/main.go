// Command submit sends one text to the text-to-video API without the TUI,
// waits for the job and saves the finished video.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"texttovideo/archive"
	"texttovideo/client"
	"texttovideo/config"
	"texttovideo/delivery"
	"texttovideo/events"
	"texttovideo/form"
	"texttovideo/poller"
	"texttovideo/session"
	"texttovideo/sources"
	"texttovideo/types"
)

type options struct {
	apiURL string
	text   string
	file   string
	url    string
	feed   string
	out    string
	wait   bool
}

func main() {
	cfg := config.Load()

	var opts options
	flag.StringVar(&opts.apiURL, "api", cfg.APIURL, "Text-to-video API URL")
	flag.StringVar(&opts.text, "text", "", "Text to narrate")
	flag.StringVar(&opts.file, "file", "", "Upload a text file")
	flag.StringVar(&opts.url, "url", "", "Narrate the main text of a web article")
	flag.StringVar(&opts.feed, "feed", "", "Narrate the newest item of a feed (URL or preset: "+strings.Join(sources.PresetNames(), ", ")+")")
	flag.StringVar(&opts.out, "out", cfg.DownloadDir, "Directory for the downloaded video")
	flag.BoolVar(&opts.wait, "wait", true, "Wait for the job and download the video")
	flag.Parse()

	log.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts); err != nil {
		log.Printf("❌ %v", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, opts options) error {
	f := form.New(cfg.MaxChars)
	if err := fill(ctx, f, opts); err != nil {
		return err
	}
	if err := f.Validate(); err != nil {
		return errors.New(form.AlertText(err))
	}

	publisher, err := events.FromConfig(cfg)
	if err != nil {
		log.Printf("⚠️  Events disabled: %v", err)
		publisher = events.NopPublisher{}
	}
	defer publisher.Close()

	c := client.NewClient(opts.apiURL)
	s := session.New()

	// Submit
	tok := s.Begin()
	log.Printf("📤 Submitting %d characters to %s", form.Length(f.Text), c.BaseURL())
	resp, err := c.SubmitText(ctx, f.Text, f.File)
	if err != nil {
		s.FailSubmit(tok, err)
		return fmt.Errorf("%s (%v)", s.Snapshot().ErrorMessage, err)
	}
	s.Accept(tok, resp.JobID)
	log.Printf("✅ Job %s accepted", resp.JobID)
	publish(ctx, publisher, s, types.EventSubmitted)

	if !opts.wait {
		fmt.Println(resp.JobID)
		return nil
	}

	// Poll
	p := poller.New(c, s, config.PollInterval)
	p.OnUpdate = func(snap session.Snapshot) {
		log.Printf("⏳ %3d%% %s", snap.Progress, snap.Message)
	}

	outcome, err := p.Run(ctx, tok)
	switch {
	case errors.Is(err, context.Canceled):
		snap := s.Snapshot()
		s.Reset()
		publishEvent(context.Background(), publisher, events.NewEvent(types.EventReset, snap.JobID))
		return errors.New("cancelled; the job keeps running on the server")
	case outcome == session.Failed:
		publish(ctx, publisher, s, types.EventFailed)
		return errors.New(s.Snapshot().ErrorMessage)
	case outcome != session.Completed:
		return fmt.Errorf("polling stopped: %v", err)
	}

	snap := s.Snapshot()
	publish(ctx, publisher, s, types.EventCompleted)
	log.Printf("🎬 Video ready: %s", c.PreviewURL(snap.VideoPath))

	// Save
	archiver, err := archive.FromConfig(ctx, cfg)
	if err != nil {
		log.Printf("⚠️  Archiving disabled: %v", err)
	}

	res, err := delivery.New(c, opts.out, archiver, publisher).Save(ctx, snap.JobID, snap.VideoPath)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		log.Printf("⚠️  %s", w)
	}

	fmt.Println(res.Path)
	log.Printf("✓ %s", res.Summary())
	return nil
}

// fill loads the form from exactly one input flag
func fill(ctx context.Context, f *form.Form, opts options) error {
	set := 0
	for _, v := range []string{opts.text, opts.file, opts.url, opts.feed} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return errors.New("use only one of -text, -file, -url, -feed")
	}

	switch {
	case opts.file != "":
		a, err := form.ReadAttachment(opts.file)
		if err != nil {
			return err
		}
		f.Attach(a)
	case opts.url != "":
		article, err := sources.FromArticle(ctx, opts.url)
		if err != nil {
			return err
		}
		f.Load(article.Text)
	case opts.feed != "":
		article, err := sources.FromFeed(ctx, opts.feed)
		if err != nil {
			return err
		}
		log.Printf("📰 Using feed item: %s", article.Title)
		f.Load(article.Text)
	default:
		f.SetText(opts.text)
	}
	return nil
}

// publish sends the session's current state as an event
func publish(ctx context.Context, p events.Publisher, s *session.Session, t types.EventType) {
	snap := s.Snapshot()

	ev := events.NewEvent(t, snap.JobID)
	ev.Progress = snap.Progress
	ev.Message = snap.Message
	if snap.Panel == session.PanelError {
		ev.Message = snap.ErrorMessage
	}
	ev.VideoPath = snap.VideoPath
	publishEvent(ctx, p, ev)
}

func publishEvent(ctx context.Context, p events.Publisher, ev types.JobEvent) {
	if err := p.Publish(ctx, ev); err != nil {
		log.Printf("⚠️  Failed to publish %s event: %v", ev.Type, err)
	}
}
