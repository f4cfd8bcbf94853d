package tui

import (
	"fmt"
	"log"
	"strings"

	"texttovideo/events"
	"texttovideo/form"
	"texttovideo/session"
	"texttovideo/types"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case SubmittedMsg:
		return m.handleSubmitted(msg)
	case PollTickMsg:
		return m.handlePollTick(msg)
	case StatusMsg:
		return m.handleStatus(msg)
	case SavedMsg:
		return m.handleSaved(msg)
	case LoadedMsg:
		return m.handleLoaded(msg)
	case AlertExpiredMsg:
		if msg.ID == m.alertID {
			m.alert = ""
		}
		return m, nil
	}

	// Cursor blinks and the like
	var taCmd, inCmd tea.Cmd
	m.textarea, taCmd = m.textarea.Update(msg)
	m.input, inCmd = m.input.Update(msg)
	return m, tea.Batch(taCmd, inCmd)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Any key dismisses a visible alert
	if m.alert != "" {
		m.alert = ""
		return m, nil
	}

	switch m.mode {
	case modeConfirm:
		return m.handleConfirmKey(msg)
	case modePrompt:
		return m.handlePromptKey(msg)
	}

	switch msg.String() {
	case "ctrl+s":
		return m.submit()
	case "esc":
		m.mode = modeConfirm
		return m, nil
	case "ctrl+o":
		return m.openPrompt(SourceFile)
	case "ctrl+l":
		return m.openPrompt(SourceArticle)
	case "ctrl+r":
		return m.openPrompt(SourceFeed)
	case "ctrl+d":
		if m.session.Snapshot().Panel == session.PanelResults {
			return m.download()
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.syncText()
	return m, cmd
}

// syncText copies the textarea into the form. The textarea enforces the
// typing limit; loaded text over the limit may only shrink until it fits.
func (m *Model) syncText() {
	value := m.textarea.Value()
	m.form.Text = value
	m.textarea.CharLimit = max(m.form.MaxChars, form.Length(value))
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeEdit
	if s := msg.String(); s == "y" || s == "Y" {
		return m.reset()
	}
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		src := m.source
		m.closePrompt()
		if value == "" {
			return m, nil
		}
		m.note = fmt.Sprintf("Loading %s...", src)
		return m, load(src, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit validates the form and starts a new job flow
func (m Model) submit() (tea.Model, tea.Cmd) {
	if err := m.form.Validate(); err != nil {
		return m.showAlert(form.AlertText(err))
	}

	tok := m.session.Begin()
	m.note = ""
	m.saving = false
	log.Printf("📤 Submitting %d characters (file: %t)", form.Length(m.form.Text), m.form.File != nil)

	return m, submitText(m.client, tok, m.form.Text, m.form.File)
}

// reset clears the form and stops observing the current job. The backend
// is not told.
func (m Model) reset() (tea.Model, tea.Cmd) {
	prev := m.session.Snapshot()

	m.session.Reset()
	m.form.Reset()
	m.textarea.Reset()
	m.textarea.CharLimit = m.form.MaxChars
	m.note = ""
	m.saving = false
	log.Printf("🔄 Form reset")

	if prev.JobID == "" {
		return m, nil
	}
	ev := events.NewEvent(types.EventReset, prev.JobID)
	ev.Progress = prev.Progress
	return m, publish(m.publisher, ev)
}

func (m Model) handleSubmitted(msg SubmittedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if m.session.FailSubmit(msg.Token, msg.Err) {
			log.Printf("❌ Submission failed: %v", msg.Err)
		}
		return m, nil
	}

	jobID := msg.Response.JobID
	if !m.session.Accept(msg.Token, jobID) {
		return m, nil
	}
	log.Printf("✅ Job %s accepted", jobID)

	return m, tea.Batch(
		pollAfter(m.interval, msg.Token),
		publish(m.publisher, events.NewEvent(types.EventSubmitted, jobID)),
	)
}

// handlePollTick issues the status check unless the flow ended meanwhile
func (m Model) handlePollTick(msg PollTickMsg) (tea.Model, tea.Cmd) {
	jobID, ok := m.session.Poll(msg.Token)
	if !ok {
		return m, nil
	}
	return m, checkStatus(m.client, msg.Token, jobID)
}

func (m Model) handleStatus(msg StatusMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if !m.session.FailPoll(msg.Token, msg.Err) {
			return m, nil
		}
		log.Printf("❌ Status check failed: %v", msg.Err)
		return m, m.jobEvent(types.EventFailed)
	}

	switch m.session.Apply(msg.Token, *msg.Status) {
	case session.Continue:
		return m, pollAfter(m.interval, msg.Token)
	case session.Completed:
		log.Printf("🎬 Video ready: %s", msg.Status.VideoPath)
		return m, m.jobEvent(types.EventCompleted)
	case session.Failed:
		log.Printf("❌ Job failed: %s", msg.Status.Message)
		return m, m.jobEvent(types.EventFailed)
	}
	return m, nil
}

// jobEvent publishes the current session state as an event
func (m Model) jobEvent(t types.EventType) tea.Cmd {
	snap := m.session.Snapshot()

	ev := events.NewEvent(t, snap.JobID)
	ev.Progress = snap.Progress
	ev.Message = snap.Message
	if snap.Panel == session.PanelError {
		ev.Message = snap.ErrorMessage
	}
	ev.VideoPath = snap.VideoPath
	return publish(m.publisher, ev)
}

func (m Model) download() (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	if m.saver == nil {
		m.note = "Downloads are not configured"
		return m, nil
	}

	snap := m.session.Snapshot()
	m.saving = true
	m.note = TextDownloading
	return m, saveVideo(m.saver, snap.Token, snap.JobID, snap.VideoPath)
}

// handleSaved reports the download outcome. The panel state is never changed.
func (m Model) handleSaved(msg SavedMsg) (tea.Model, tea.Cmd) {
	if !m.session.Current(msg.Token) {
		return m, nil
	}
	m.saving = false

	if msg.Err != nil {
		log.Printf("❌ %v", msg.Err)
		m.note = "Download failed: " + msg.Err.Error()
		return m, nil
	}

	m.note = msg.Result.Summary()
	if len(msg.Result.Warnings) > 0 {
		m.note += " [" + strings.Join(msg.Result.Warnings, "; ") + "]"
	}
	return m, nil
}

// handleLoaded replaces the text field wholesale with the loaded content
func (m Model) handleLoaded(msg LoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.note = ""
		log.Printf("❌ Failed to load %s: %v", msg.Source, msg.Err)
		return m.showAlert(fmt.Sprintf("Could not load %s: %v", msg.Source, msg.Err))
	}

	if msg.Attachment != nil {
		m.form.Attach(*msg.Attachment)
	} else {
		m.form.File = nil
		m.form.Load(msg.Text)
	}

	// Lift the limit so the textarea shows loaded content in full
	m.textarea.CharLimit = max(m.form.MaxChars, form.Length(m.form.Text))
	m.textarea.SetValue(m.form.Text)
	m.note = "Loaded " + msg.Title
	return m, nil
}

func (m Model) openPrompt(src Source) (tea.Model, tea.Cmd) {
	m.mode = modePrompt
	m.source = src
	m.input.Reset()
	m.input.Prompt = promptText(src)
	m.textarea.Blur()
	return m, m.input.Focus()
}

func (m *Model) closePrompt() {
	m.mode = modeEdit
	m.input.Blur()
	m.textarea.Focus()
}

func (m Model) showAlert(text string) (tea.Model, tea.Cmd) {
	m.alertID++
	m.alert = text
	return m, expireAlert(m.alertID)
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	w := msg.Width - 4
	if w > 100 {
		w = 100
	}
	if w < 20 {
		w = 20
	}
	m.textarea.SetWidth(w)
	m.progress.Width = w
	m.input.Width = w - len(TextPromptFeed)
	return m
}

func promptText(src Source) string {
	switch src {
	case SourceFile:
		return TextPromptFile
	case SourceArticle:
		return TextPromptURL
	default:
		return TextPromptFeed
	}
}
