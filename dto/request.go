package dto

import (
	"errors"
	"strings"
)

// AttachmentPayload is an attachment as it arrives on the JSON API,
// content base64-encoded (standard or URL-safe, padding optional).
type AttachmentPayload struct {
	Filename      string `json:"filename"`
	MimeType      string `json:"mime_type"`
	SizeBytes     int64  `json:"size_bytes"`
	ContentBase64 string `json:"content_base64,omitempty"`
}

// ProcessEmailRequest is the body of POST /api/v1/email/process.
type ProcessEmailRequest struct {
	MessageID   string              `json:"message_id" binding:"required"`
	Subject     string              `json:"subject"`
	From        string              `json:"from"`
	Date        string              `json:"date"`
	Body        string              `json:"body"`
	Attachments []AttachmentPayload `json:"attachments"`
}

// Validate performs basic validation on the request
func (r *ProcessEmailRequest) Validate() error {
	if strings.TrimSpace(r.MessageID) == "" {
		return ErrMissingMessageID
	}
	return nil
}

// EmailBatchRequest is the body of POST /api/v1/email/batch.
// Concurrency 0 means "use the server default".
type EmailBatchRequest struct {
	Emails      []ProcessEmailRequest `json:"emails" binding:"required"`
	Concurrency int                   `json:"concurrency"`
}

func (r *EmailBatchRequest) Validate() error {
	if len(r.Emails) == 0 {
		return ErrNoEmailsProvided
	}
	if r.Concurrency < 0 {
		return errors.New("concurrency must not be negative")
	}
	return nil
}

// AnalyzeTextRequest is the body of POST /api/v1/parse/text.
type AnalyzeTextRequest struct {
	Text     string `json:"text" binding:"required"`
	Filename string `json:"filename"`
}

func (r *AnalyzeTextRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyText
	}
	return nil
}

// ParseURLRequest is the body of POST /api/v1/parse/url.
type ParseURLRequest struct {
	URL string `json:"url" binding:"required"`
}

func (r *ParseURLRequest) Validate() error {
	u := strings.TrimSpace(r.URL)
	if u == "" {
		return ErrMissingURL
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return errors.New("url must be http or https")
	}
	return nil
}
