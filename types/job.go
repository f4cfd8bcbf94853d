package types

import "time"

// JobState is the status string reported by GET /status/{job_id}.
// Only StateCompleted and StateError are terminal; the backend may report
// any other value while work is in progress.
type JobState string

const (
	StatePending    JobState = "pending"
	StateProcessing JobState = "processing"
	StateCompleted  JobState = "completed"
	StateError      JobState = "error"
)

// Terminal reports whether polling should stop at this state
func (s JobState) Terminal() bool {
	return s == StateCompleted || s == StateError
}

// SubmitResponse is the JSON body of a successful POST /process_text
type SubmitResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status,omitempty"`
}

// ErrorResponse is the JSON body the backend sends with non-2xx statuses
type ErrorResponse struct {
	Error string `json:"error"`
}

// JobStatus is one snapshot from GET /status/{job_id}
type JobStatus struct {
	Status    JobState `json:"status"`
	Progress  float64  `json:"progress"`
	Message   string   `json:"message"`
	VideoPath string   `json:"video_path,omitempty"`
}

// EventType names a job lifecycle transition seen by the client
type EventType string

const (
	EventSubmitted EventType = "submitted"
	EventCompleted EventType = "completed"
	EventFailed    EventType = "failed"
	EventReset     EventType = "reset"
	EventSaved     EventType = "saved"
)

// JobEvent is published when the client observes a lifecycle transition
type JobEvent struct {
	Type      EventType `json:"type"`
	JobID     string    `json:"job_id,omitempty"`
	Progress  int       `json:"progress"`
	Message   string    `json:"message,omitempty"`
	VideoPath string    `json:"video_path,omitempty"`
	Location  string    `json:"location,omitempty"`
	At        time.Time `json:"at"`
}
