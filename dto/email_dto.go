package dto

import "strings"

// EmailAttachment is one attachment on a normalized email. Data holds the
// decoded bytes; nil means the caller did not fetch the content.
type EmailAttachment struct {
	Filename  string `json:"filename"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
	Data      []byte `json:"-"`
}

// EmailRecord is the normalized email supplied by the caller (Gmail/IMAP
// wrapper, JSON API, or .eml upload). Header parsing and MIME decoding are
// the caller's job; the pipeline only sees this shape.
type EmailRecord struct {
	ID          string            `json:"id"`
	Subject     string            `json:"subject"`
	From        string            `json:"from"`
	Date        string            `json:"date"` // ISO-8601 or RFC-2822, kept verbatim
	BodyText    string            `json:"body_text"`
	Attachments []EmailAttachment `json:"attachments,omitempty"`
}

// PDFAttachments returns the attachments that look like PDFs with content.
func (e *EmailRecord) PDFAttachments() []EmailAttachment {
	var pdfs []EmailAttachment
	for _, att := range e.Attachments {
		if att.IsPDF() && len(att.Data) > 0 {
			pdfs = append(pdfs, att)
		}
	}
	return pdfs
}

// IsPDF checks mime type first, filename extension second.
func (a *EmailAttachment) IsPDF() bool {
	if strings.EqualFold(a.MimeType, "application/pdf") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(a.Filename), ".pdf")
}
