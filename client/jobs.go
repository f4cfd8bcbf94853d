package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"

	"texttovideo/config"
	"texttovideo/form"
	"texttovideo/types"
)

// ErrMissingJobID is returned when a 2xx submission carries no job id
var ErrMissingJobID = errors.New("response missing job_id")

// SubmitText creates a job with a multipart form carrying the text field
// and, when file is non-nil, the uploaded file.
func (c *Client) SubmitText(ctx context.Context, text string, file *form.Attachment) (*types.SubmitResponse, error) {
	body, contentType, err := encodeForm(text, file)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, config.ProcessTextPath, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var result types.SubmitResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	if result.JobID == "" {
		return nil, ErrMissingJobID
	}

	return &result, nil
}

// GetStatus fetches the current status of a job
func (c *Client) GetStatus(ctx context.Context, jobID string) (*types.JobStatus, error) {
	req, err := c.newRequest(ctx, http.MethodGet, config.StatusPath+url.PathEscape(jobID), nil)
	if err != nil {
		return nil, err
	}

	var status types.JobStatus
	if err := c.do(req, &status); err != nil {
		return nil, err
	}

	return &status, nil
}

func encodeForm(text string, file *form.Attachment) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField(config.TextField, text); err != nil {
		return nil, "", fmt.Errorf("failed to write form: %w", err)
	}

	if file != nil {
		part, err := w.CreateFormFile(config.FileField, file.Name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to write form: %w", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write form: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to write form: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
