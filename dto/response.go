package dto

import "errors"

// Custom errors
var (
	ErrMissingMessageID = errors.New("message_id is required")
	ErrNoEmailsProvided = errors.New("no emails provided")
	ErrNoFilesProvided  = errors.New("no files provided")
	ErrEmptyText        = errors.New("text is required")
	ErrMissingURL       = errors.New("url is required")
	ErrNotPDF           = errors.New("file is not a PDF")
	ErrFileTooLarge     = errors.New("file exceeds maximum allowed size")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// SkipReason explains why an email was not processed.
type SkipReason string

const (
	SkipCreditCardStatement SkipReason = "credit_card_statement"
	SkipPromotional         SkipReason = "promotional"
	SkipDuplicate           SkipReason = "duplicate"
)

// ProcessEmailResponse is the result of POST /api/v1/email/process.
type ProcessEmailResponse struct {
	Success           bool             `json:"success"`
	MessageID         string           `json:"message_id"`
	SkipReason        SkipReason       `json:"skip_reason,omitempty"`
	Purchase          *PurchaseRecord  `json:"purchase,omitempty"`
	Documents         []DocumentRecord `json:"documents"`
	ProcessedCount    int              `json:"processed_count"`
	TotalAttachments  int              `json:"total_attachments"`
	DuplicatesRemoved int              `json:"duplicates_removed"`
	Confidence        float64          `json:"confidence"`
}

// ParseBatchResponse summarises a multi-file parse run. A file counts as
// successful when its record confidence clears 0.5.
type ParseBatchResponse struct {
	BatchID        string           `json:"batch_id"`
	TotalFiles     int              `json:"total_files"`
	ProcessedFiles int              `json:"processed_files"`
	Successful     int              `json:"successful"`
	Failed         int              `json:"failed"`
	Results        []DocumentRecord `json:"results"`
	Errors         []string         `json:"errors,omitempty"`
	ProcessingMS   int64            `json:"processing_ms"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status       string `json:"status"`
	Service      string `json:"service"`
	CacheBackend string `json:"cache_backend"`
	OCREnabled   bool   `json:"ocr_enabled"`
}

// SupportedFormatsResponse is the GET /api/v1/supported-formats body.
type SupportedFormatsResponse struct {
	Formats  []string `json:"formats"`
	Features []string `json:"features"`
	MaxSize  string   `json:"max_size"`
}
