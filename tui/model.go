package tui

import (
	"time"

	"texttovideo/client"
	"texttovideo/config"
	"texttovideo/delivery"
	"texttovideo/events"
	"texttovideo/form"
	"texttovideo/session"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Source is where prompted input is loaded from
type Source string

const (
	SourceFile    Source = "file"
	SourceArticle Source = "article"
	SourceFeed    Source = "feed"
)

// mode is what keyboard input currently goes to
type mode int

const (
	modeEdit mode = iota
	modePrompt
	modeConfirm
)

const defaultWidth = 72

// Deps are the collaborators the model works with
type Deps struct {
	Client   *client.Client
	Saver    *delivery.Saver
	Events   events.Publisher
	MaxChars int

	// Interval between status checks; config.PollInterval when zero
	Interval time.Duration
}

// Model is the form/job controller rendered in the terminal.
// The session and form are owned by this model; the bubbletea loop is the
// only goroutine touching them apart from the session's own locking.
type Model struct {
	client    *client.Client
	saver     *delivery.Saver
	publisher events.Publisher
	interval  time.Duration

	session *session.Session
	form    *form.Form

	textarea textarea.Model
	input    textinput.Model
	progress progress.Model

	mode   mode
	source Source

	alert   string
	alertID int

	// note is the footer line for download results and load messages
	note   string
	saving bool
}

// NewModel creates a new TUI model
func NewModel(d Deps) Model {
	f := form.New(d.MaxChars)

	ta := textarea.New()
	ta.Placeholder = TextPlaceholder
	ta.CharLimit = f.MaxChars
	ta.ShowLineNumbers = false
	ta.SetWidth(defaultWidth)
	ta.SetHeight(8)
	ta.MaxHeight = 0
	ta.Focus()

	in := textinput.New()
	in.Width = defaultWidth - len(TextPromptFeed)

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = defaultWidth

	interval := d.Interval
	if interval <= 0 {
		interval = config.PollInterval
	}

	publisher := d.Events
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	return Model{
		client:    d.Client,
		saver:     d.Saver,
		publisher: publisher,
		interval:  interval,
		session:   session.New(),
		form:      f,
		textarea:  ta,
		input:     in,
		progress:  bar,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Snapshot exposes the current session state
func (m Model) Snapshot() session.Snapshot {
	return m.session.Snapshot()
}
