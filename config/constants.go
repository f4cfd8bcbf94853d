package config

import "time"

// Polling Constants
const (
	// PollInterval is the wait between the end of one status check and the start of the next
	PollInterval = 2 * time.Second

	// HTTPTimeout bounds a single request to the job API
	HTTPTimeout = 30 * time.Second
)

// Form Constants
const (
	// DefaultMaxChars is the text field limit when TTV_MAX_CHARS is not set
	DefaultMaxChars = 5000

	// MinTextLength is the shortest typed text accepted for submission
	MinTextLength = 10

	// CounterWarningRatio marks the counter as warning above this share of the limit
	CounterWarningRatio = 0.75

	// CounterDangerRatio marks the counter as danger above this share of the limit
	CounterDangerRatio = 0.9

	// AlertTTL is how long a validation alert stays on screen
	AlertTTL = 5 * time.Second
)

// Backend Contract Constants
const (
	// ProcessTextPath creates a job from the multipart form
	ProcessTextPath = "/process_text"

	// StatusPath is followed by the job id
	StatusPath = "/status/"

	// PreviewPath is followed by the video path
	PreviewPath = "/preview/"

	// DownloadPath is followed by the video path
	DownloadPath = "/download/"

	// TextField and FileField are the multipart field names
	TextField = "text_input"
	FileField = "text_file"

	// MaxUploadBytes is the backend's request size limit (16MB)
	MaxUploadBytes = 16 * 1024 * 1024
)

// Directory Constants
const (
	// DownloadDir is where finished videos are written
	DownloadDir = "downloads"
)
