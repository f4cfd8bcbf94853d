// Package session holds the state of one form/job flow: which panel is shown,
// the current job id, the last status snapshot and a generation token that
// lets callers drop responses from flows that were reset or replaced.
package session

import (
	"math"
	"sync"

	"texttovideo/types"
)

// Panel is the single visible result area of the form
type Panel string

const (
	PanelIdle       Panel = "idle"
	PanelProcessing Panel = "processing"
	PanelResults    Panel = "results"
	PanelError      Panel = "error"
)

// Visibility says which of the three panels are shown
type Visibility struct {
	Processing bool
	Results    bool
	Error      bool
}

// Visibility maps the panel state to what is on screen. At most one panel is visible.
func (p Panel) Visibility() Visibility {
	return Visibility{
		Processing: p == PanelProcessing,
		Results:    p == PanelResults,
		Error:      p == PanelError,
	}
}

// Token identifies the flow an asynchronous request was issued under
type Token uint64

// Outcome tells the poller what to do after a status snapshot was applied
type Outcome int

const (
	// Stale means the snapshot belonged to an old flow and was ignored
	Stale Outcome = iota
	// Continue means the job is still running and polling goes on
	Continue
	// Completed means the video is ready; polling stops
	Completed
	// Failed means the job or the status check failed; polling stops
	Failed
)

// Snapshot is a copy of the session state for rendering
type Snapshot struct {
	Panel        Panel
	Token        Token
	JobID        string
	Progress     int
	Message      string
	VideoPath    string
	ErrorMessage string
}

// Session is the controller state for a single form. Safe for concurrent use.
type Session struct {
	mu sync.Mutex

	panel     Panel
	gen       Token
	jobID     string
	progress  int
	message   string
	videoPath string
	errMsg    string
}

// New creates a session in the idle state
func New() *Session {
	return &Session{panel: PanelIdle}
}

// Begin starts a new flow after validation passed. The processing panel is
// shown and responses from any earlier flow become stale.
func (s *Session) Begin() Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.clear()
	s.panel = PanelProcessing
	s.message = "Submitting text..."
	return s.gen
}

// Accept stores the job id returned by the backend. Returns false if tok is stale.
func (s *Session) Accept(tok Token, jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok != s.gen || s.panel != PanelProcessing {
		return false
	}
	s.jobID = jobID
	s.message = "Job queued..."
	return true
}

// FailSubmit shows the error panel for a failed submission. Returns false if tok is stale.
func (s *Session) FailSubmit(tok Token, err error) bool {
	return s.fail(tok, SubmitErrorText(err))
}

// FailPoll shows the error panel for a failed status check. Returns false if tok is stale.
func (s *Session) FailPoll(tok Token, err error) bool {
	return s.fail(tok, PollErrorText(err))
}

// Poll returns the job id to check for tok. ok is false when there is nothing to
// poll: the token is stale, no job id is set yet, or the flow already ended.
func (s *Session) Poll(tok Token) (jobID string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok != s.gen || s.jobID == "" || s.panel != PanelProcessing {
		return "", false
	}
	return s.jobID, true
}

// Apply records a status snapshot. Progress and message are always updated;
// "completed" moves to the results panel and "error" to the error panel.
func (s *Session) Apply(tok Token, st types.JobStatus) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok != s.gen || s.panel != PanelProcessing {
		return Stale
	}

	s.progress = clampProgress(st.Progress)
	s.message = st.Message

	switch st.Status {
	case types.StateCompleted:
		s.panel = PanelResults
		s.videoPath = st.VideoPath
		return Completed
	case types.StateError:
		s.panel = PanelError
		s.errMsg = st.Message
		if s.errMsg == "" {
			s.errMsg = JobFailedText
		}
		return Failed
	default:
		return Continue
	}
}

// Reset returns to idle, clears the job id and invalidates every in-flight
// response. The backend is not told; its work carries on unobserved.
func (s *Session) Reset() Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.clear()
	s.panel = PanelIdle
	return s.gen
}

// Current reports whether tok is the live flow
func (s *Session) Current(tok Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tok == s.gen
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Panel:        s.panel,
		Token:        s.gen,
		JobID:        s.jobID,
		Progress:     s.progress,
		Message:      s.message,
		VideoPath:    s.videoPath,
		ErrorMessage: s.errMsg,
	}
}

func (s *Session) fail(tok Token, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok != s.gen || s.panel != PanelProcessing {
		return false
	}
	s.panel = PanelError
	s.errMsg = msg
	return true
}

// clear drops job data (must hold lock)
func (s *Session) clear() {
	s.jobID = ""
	s.progress = 0
	s.message = ""
	s.videoPath = ""
	s.errMsg = ""
}

// clampProgress rounds the reported progress to a whole percent in 0..100
func clampProgress(p float64) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return int(math.Round(p))
}
