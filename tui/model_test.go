package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"texttovideo/client"
	"texttovideo/delivery"
	"texttovideo/form"
	"texttovideo/session"
	"texttovideo/types"

	tea "github.com/charmbracelet/bubbletea"
)

// backend is a scripted job API. Status requests walk through statuses and
// then keep returning the last one.
type backend struct {
	mu          sync.Mutex
	submitCode  int
	submitBody  string
	statuses    []types.JobStatus
	submits     int
	statusCalls int
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/process_text":
		b.submits++
		code := b.submitCode
		if code == 0 {
			code = http.StatusOK
		}
		body := b.submitBody
		if body == "" {
			body = `{"job_id":"abc"}`
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		w.Write([]byte(body))
	case r.URL.Path == "/status/abc":
		i := b.statusCalls
		if i >= len(b.statuses) {
			i = len(b.statuses) - 1
		}
		b.statusCalls++
		json.NewEncoder(w).Encode(b.statuses[i])
	case r.URL.Path == "/download/out.mp4":
		w.Header().Set("Content-Type", "video/mp4")
		w.Write([]byte("video-bytes"))
	default:
		http.NotFound(w, r)
	}
}

func (b *backend) counts() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.submits, b.statusCalls
}

func newTestModel(t *testing.T, b *backend) (Model, *client.Client) {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	c := client.NewClient(srv.URL)
	m := NewModel(Deps{
		Client:   c,
		Saver:    delivery.New(c, t.TempDir(), nil, nil),
		MaxChars: 100,
		Interval: time.Millisecond,
	})
	return m, c
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: k})
}

// drain runs cmd and every command it leads to, feeding the job messages
// back into the model
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()

	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("too many steps; polling did not stop")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}

		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case SubmittedMsg, PollTickMsg, StatusMsg, SavedMsg, LoadedMsg:
			var next tea.Cmd
			m, next = update(t, m, msg)
			queue = append(queue, next)
		}
	}
	return m
}

func TestSubmitValidation(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		alert string
	}{
		{"empty", "", "Please enter some text or upload a file."},
		{"whitespace", "     ", "Please enter some text or upload a file."},
		{"too short", "hello", "Text must be at least 10 characters long."},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := &backend{}
			m, _ := newTestModel(t, b)
			if c.text != "" {
				m = typeText(t, m, c.text)
			}

			m, cmd := press(t, m, tea.KeyCtrlS)
			if cmd == nil {
				t.Fatal("expected alert timer command")
			}
			if m.alert != c.alert {
				t.Fatalf("alert = %q; want %q", m.alert, c.alert)
			}
			if !strings.Contains(m.View(), c.alert) {
				t.Fatal("alert not rendered")
			}
			if m.Snapshot().Panel != session.PanelIdle {
				t.Fatalf("panel = %s; want idle", m.Snapshot().Panel)
			}
			if submits, _ := b.counts(); submits != 0 {
				t.Fatalf("submits = %d; want 0", submits)
			}

			// Any key dismisses the alert without editing
			m = typeText(t, m, "x")
			if m.alert != "" || m.textarea.Value() != c.text {
				t.Fatalf("after dismiss: alert %q, text %q", m.alert, m.textarea.Value())
			}
		})
	}
}

func TestAlertExpires(t *testing.T) {
	m, _ := newTestModel(t, &backend{})

	m, _ = press(t, m, tea.KeyCtrlS)
	first := m.alertID
	m, _ = press(t, m, tea.KeyEnter)
	m, _ = press(t, m, tea.KeyCtrlS)

	m, _ = update(t, m, AlertExpiredMsg{ID: first})
	if m.alert == "" {
		t.Fatal("expired timer of an older alert cleared the new one")
	}
	m, _ = update(t, m, AlertExpiredMsg{ID: m.alertID})
	if m.alert != "" {
		t.Fatalf("alert = %q; want cleared", m.alert)
	}
}

func TestCounterFollowsTyping(t *testing.T) {
	m, _ := newTestModel(t, &backend{})
	m = typeText(t, m, strings.Repeat("a", 80))

	if got := m.form.Counter(); got.Text() != "80/100 characters" || got.Level != form.LevelWarning {
		t.Fatalf("counter = %+v", got)
	}
	if !strings.Contains(m.View(), "80/100 characters") {
		t.Fatal("counter not rendered")
	}

	m = typeText(t, m, strings.Repeat("b", 50))
	if got := m.form.Counter(); got.Length != 100 || got.Level != form.LevelDanger {
		t.Fatalf("counter = %+v; want capped at 100, danger", got)
	}
}

func TestCompletedFlow(t *testing.T) {
	b := &backend{statuses: []types.JobStatus{
		{Status: types.StateProcessing, Progress: 40, Message: "Converting text to speech..."},
		{Status: types.StateCompleted, Progress: 100, Message: "Video created successfully!", VideoPath: "out.mp4"},
	}}
	m, c := newTestModel(t, b)
	m = typeText(t, m, "A valid story for the video.")

	m, cmd := press(t, m, tea.KeyCtrlS)
	if m.Snapshot().Panel != session.PanelProcessing {
		t.Fatalf("panel = %s; want processing right after submit", m.Snapshot().Panel)
	}

	m = drain(t, m, cmd)

	snap := m.Snapshot()
	if snap.Panel != session.PanelResults || snap.VideoPath != "out.mp4" || snap.Progress != 100 {
		t.Fatalf("snapshot = %+v", snap)
	}
	submits, statusCalls := b.counts()
	if submits != 1 || statusCalls != 2 {
		t.Fatalf("submits = %d, status calls = %d; want 1, 2", submits, statusCalls)
	}

	view := m.View()
	for _, want := range []string{c.BaseURL() + "/preview/out.mp4", c.BaseURL() + "/download/out.mp4", TextFooterResults} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Processing") {
		t.Fatal("processing panel still rendered")
	}
}

func TestErrorStatus(t *testing.T) {
	b := &backend{statuses: []types.JobStatus{{Status: types.StateError, Message: "boom"}}}
	m, _ := newTestModel(t, b)
	m = typeText(t, m, "A valid story for the video.")

	m, cmd := press(t, m, tea.KeyCtrlS)
	m = drain(t, m, cmd)

	if snap := m.Snapshot(); snap.Panel != session.PanelError || snap.ErrorMessage != "boom" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if !strings.Contains(m.View(), "boom") {
		t.Fatal("error message not rendered")
	}
	if _, statusCalls := b.counts(); statusCalls != 1 {
		t.Fatalf("status calls = %d; want 1", statusCalls)
	}
}

func TestSubmitFailureShowsBackendMessage(t *testing.T) {
	b := &backend{submitCode: http.StatusBadRequest, submitBody: `{"error":"Text is not allowed"}`}
	m, _ := newTestModel(t, b)
	m = typeText(t, m, "A valid story for the video.")

	m, cmd := press(t, m, tea.KeyCtrlS)
	m = drain(t, m, cmd)

	if snap := m.Snapshot(); snap.Panel != session.PanelError || snap.ErrorMessage != "Text is not allowed" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if _, statusCalls := b.counts(); statusCalls != 0 {
		t.Fatalf("status calls = %d; want 0", statusCalls)
	}
}

func TestResetMidPollStopsPolling(t *testing.T) {
	b := &backend{statuses: []types.JobStatus{{Status: types.StateProcessing, Progress: 20, Message: "Chunking text..."}}}
	m, _ := newTestModel(t, b)
	m = typeText(t, m, "A valid story for the video.")

	m, cmd := press(t, m, tea.KeyCtrlS)
	m, cmd = update(t, m, cmd())

	// First command of the batch is the poll timer
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected batch after submission")
	}
	tick := batch[0]().(PollTickMsg)
	m, cmd = update(t, m, tick)
	pending := cmd().(StatusMsg)

	m, _ = press(t, m, tea.KeyEsc)
	if !strings.Contains(m.View(), TextConfirmReset) {
		t.Fatal("reset confirmation not shown")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	m, cmd = update(t, m, pending)
	if cmd != nil {
		t.Fatal("stale status response scheduled another check")
	}
	m, cmd = update(t, m, tick)
	if cmd != nil {
		t.Fatal("stale tick issued a status check")
	}

	snap := m.Snapshot()
	if snap.Panel != session.PanelIdle || snap.JobID != "" || snap.Progress != 0 {
		t.Fatalf("snapshot = %+v; want idle", snap)
	}
	if m.textarea.Value() != "" || m.form.Counter().Text() != "0/100 characters" {
		t.Fatalf("form not cleared: %q", m.textarea.Value())
	}
	if _, statusCalls := b.counts(); statusCalls != 1 {
		t.Fatalf("status calls = %d; want 1", statusCalls)
	}
}

func TestResetDeclinedKeepsForm(t *testing.T) {
	m, _ := newTestModel(t, &backend{})
	m = typeText(t, m, "Keep this text please.")

	m, _ = press(t, m, tea.KeyEsc)
	m = typeText(t, m, "n")

	if m.mode != modeEdit || m.textarea.Value() != "Keep this text please." {
		t.Fatalf("mode %v, text %q", m.mode, m.textarea.Value())
	}
}

func TestLoadedReplacesText(t *testing.T) {
	m, _ := newTestModel(t, &backend{})
	m = typeText(t, m, "typed text")

	a := &form.Attachment{Name: "story.txt", Content: []byte("File content for the video")}
	m, _ = update(t, m, LoadedMsg{Source: SourceFile, Title: a.Name, Attachment: a})
	if m.textarea.Value() != "File content for the video" || m.form.File == nil {
		t.Fatalf("after file: text %q, file %v", m.textarea.Value(), m.form.File)
	}
	if !strings.Contains(m.View(), "📎 story.txt") {
		t.Fatal("attachment not rendered")
	}

	m, _ = update(t, m, LoadedMsg{Source: SourceArticle, Title: "Night Ferry", Text: "Article body text"})
	if m.textarea.Value() != "Article body text" || m.form.File != nil {
		t.Fatalf("after article: text %q, file %v", m.textarea.Value(), m.form.File)
	}
	if m.note != "Loaded Night Ferry" {
		t.Fatalf("note = %q", m.note)
	}
}

func TestLoadedTextOverLimitIsKept(t *testing.T) {
	m, _ := newTestModel(t, &backend{})
	long := strings.Repeat("x", 150)

	a := &form.Attachment{Name: "server.log", Content: []byte(long)}
	m, _ = update(t, m, LoadedMsg{Source: SourceFile, Title: a.Name, Attachment: a})

	if m.textarea.Value() != long || m.form.Text != long {
		t.Fatalf("textarea %d chars, form %d chars; want 150 each", len(m.textarea.Value()), len(m.form.Text))
	}
	if !strings.Contains(m.View(), "150/100 characters") {
		t.Fatal("counter should show the loaded length past the limit")
	}

	// Typing cannot grow it further, deleting shrinks it
	m = typeText(t, m, "y")
	if got := form.Length(m.form.Text); got != 150 {
		t.Fatalf("after typing: %d chars; want 150", got)
	}
	m, _ = press(t, m, tea.KeyBackspace)
	if got := form.Length(m.form.Text); got != 149 || m.textarea.CharLimit != 149 {
		t.Fatalf("after backspace: %d chars, limit %d; want 149", got, m.textarea.CharLimit)
	}

	m, _ = update(t, m, LoadedMsg{Source: SourceArticle, Title: "Long read", Text: long + long})
	if got := form.Length(m.form.Text); got != 300 {
		t.Fatalf("article load: %d chars; want 300", got)
	}

	m, _ = press(t, m, tea.KeyEsc)
	m = typeText(t, m, "y")
	if m.textarea.CharLimit != 100 {
		t.Fatalf("CharLimit after reset = %d; want 100", m.textarea.CharLimit)
	}
}

func TestPromptLoadsFile(t *testing.T) {
	m, _ := newTestModel(t, &backend{})

	m, _ = press(t, m, tea.KeyCtrlO)
	if m.mode != modePrompt || m.source != SourceFile {
		t.Fatalf("mode %v source %s; want file prompt", m.mode, m.source)
	}
	m = typeText(t, m, "/does/not/exist.txt")

	m, cmd := press(t, m, tea.KeyEnter)
	if m.mode != modeEdit || cmd == nil {
		t.Fatal("enter should close the prompt and start loading")
	}

	m, _ = update(t, m, cmd())
	if !strings.HasPrefix(m.alert, "Could not load file") {
		t.Fatalf("alert = %q", m.alert)
	}
}

func TestDownloadKeepsResultsPanel(t *testing.T) {
	b := &backend{statuses: []types.JobStatus{
		{Status: types.StateCompleted, Progress: 100, Message: "done", VideoPath: "out.mp4"},
	}}
	m, _ := newTestModel(t, b)
	m = typeText(t, m, "A valid story for the video.")

	m, cmd := press(t, m, tea.KeyCtrlS)
	m = drain(t, m, cmd)

	m, cmd = press(t, m, tea.KeyCtrlD)
	if m.note != TextDownloading {
		t.Fatalf("note = %q", m.note)
	}
	m = drain(t, m, cmd)

	if !strings.HasPrefix(m.note, "Saved ") {
		t.Fatalf("note = %q", m.note)
	}
	if m.Snapshot().Panel != session.PanelResults {
		t.Fatalf("panel = %s; want results", m.Snapshot().Panel)
	}
}

func TestDownloadOnlyInResults(t *testing.T) {
	m, _ := newTestModel(t, &backend{})
	m = typeText(t, m, "abc")

	m, _ = press(t, m, tea.KeyCtrlD)
	if m.saving || m.note != "" {
		t.Fatal("download started outside the results panel")
	}
}
