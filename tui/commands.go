package tui

import (
	"context"
	"log"
	"time"

	"texttovideo/client"
	"texttovideo/config"
	"texttovideo/delivery"
	"texttovideo/events"
	"texttovideo/form"
	"texttovideo/session"
	"texttovideo/sources"
	"texttovideo/types"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	eventTimeout = 10 * time.Second
	saveTimeout  = 10 * time.Minute
)

// submitText creates the job
func submitText(c *client.Client, tok session.Token, text string, file *form.Attachment) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), config.HTTPTimeout)
		defer cancel()

		resp, err := c.SubmitText(ctx, text, file)
		return SubmittedMsg{Token: tok, Response: resp, Err: err}
	}
}

// pollAfter schedules the next status check. It is only issued from the
// handler of the previous response, so checks never overlap.
func pollAfter(interval time.Duration, tok session.Token) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return PollTickMsg{Token: tok}
	})
}

// checkStatus fetches the job status
func checkStatus(c *client.Client, tok session.Token, jobID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), config.HTTPTimeout)
		defer cancel()

		status, err := c.GetStatus(ctx, jobID)
		return StatusMsg{Token: tok, Status: status, Err: err}
	}
}

// saveVideo downloads the finished video and runs the follow-ups
func saveVideo(s *delivery.Saver, tok session.Token, jobID, videoPath string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		res, err := s.Save(ctx, jobID, videoPath)
		return SavedMsg{Token: tok, Result: res, Err: err}
	}
}

// load reads input from a file, article or feed
func load(src Source, input string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), config.HTTPTimeout)
		defer cancel()

		switch src {
		case SourceFile:
			a, err := form.ReadAttachment(input)
			if err != nil {
				return LoadedMsg{Source: src, Err: err}
			}
			return LoadedMsg{Source: src, Title: a.Name, Attachment: &a}
		case SourceArticle:
			article, err := sources.FromArticle(ctx, input)
			if err != nil {
				return LoadedMsg{Source: src, Err: err}
			}
			return LoadedMsg{Source: src, Title: article.Title, Text: article.Text}
		default:
			article, err := sources.FromFeed(ctx, input)
			if err != nil {
				return LoadedMsg{Source: src, Err: err}
			}
			return LoadedMsg{Source: src, Title: article.Title, Text: article.Text}
		}
	}
}

// publish sends a job event; failures are only logged
func publish(p events.Publisher, ev types.JobEvent) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		defer cancel()

		if err := p.Publish(ctx, ev); err != nil {
			log.Printf("⚠️  Failed to publish %s event: %v", ev.Type, err)
		}
		return nil
	}
}

// expireAlert clears alert id after the alert lifetime
func expireAlert(id int) tea.Cmd {
	return tea.Tick(config.AlertTTL, func(time.Time) tea.Msg {
		return AlertExpiredMsg{ID: id}
	})
}
