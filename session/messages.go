package session

import (
	"errors"

	"texttovideo/client"
)

// User-facing error texts
const (
	SubmitFailedText  = "An error occurred while processing your request."
	NetworkErrorText  = "Network error. Please check your connection and try again."
	StatusFailedText  = "Failed to check processing status."
	StatusNetworkText = "Error checking status. Please check your connection and try again."
	JobFailedText     = "Video processing failed."
)

// SubmitErrorText picks the message for a failed submission: the backend's
// own error text when it sent one, a generic text for other HTTP failures,
// and the network text for everything else.
func SubmitErrorText(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return SubmitFailedText
	}
	if errors.Is(err, client.ErrMissingJobID) {
		return SubmitFailedText
	}
	return NetworkErrorText
}

// PollErrorText picks the message for a failed status check
func PollErrorText(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return StatusFailedText
	}
	return StatusNetworkText
}
