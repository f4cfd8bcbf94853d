package tui

import (
	"texttovideo/delivery"
	"texttovideo/form"
	"texttovideo/session"
	"texttovideo/types"
)

// Messages for the tea program. Everything tied to a job flow carries the
// session token it was issued under so late replies can be dropped.

// SubmittedMsg is sent when POST /process_text returns
type SubmittedMsg struct {
	Token    session.Token
	Response *types.SubmitResponse
	Err      error
}

// PollTickMsg fires when the next status check is due
type PollTickMsg struct {
	Token session.Token
}

// StatusMsg is sent when GET /status/{job_id} returns
type StatusMsg struct {
	Token  session.Token
	Status *types.JobStatus
	Err    error
}

// SavedMsg is sent when a download (and its follow-ups) finished
type SavedMsg struct {
	Token  session.Token
	Result *delivery.Result
	Err    error
}

// LoadedMsg is sent when a file, article or feed item was read
type LoadedMsg struct {
	Source     Source
	Text       string
	Title      string
	Attachment *form.Attachment
	Err        error
}

// AlertExpiredMsg clears the alert with the given id
type AlertExpiredMsg struct {
	ID int
}
