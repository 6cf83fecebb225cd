package dto

// AmountSource tags which signal produced the final extracted fields.
type AmountSource string

const (
	SourcePDF    AmountSource = "pdf"
	SourceEmail  AmountSource = "email"
	SourceHybrid AmountSource = "hybrid"
)

// PurchaseRecord is the classification result for one email. Amount is nil
// when no amount was found; a nil amount is NOT the same as zero.
// Records are immutable once assembled — re-classifying produces a new one.
type PurchaseRecord struct {
	EmailID         string       `json:"email_id"`
	Vendor          string       `json:"vendor"`
	Amount          *float64     `json:"amount,omitempty"`
	Date            string       `json:"date"`
	Subject         string       `json:"subject"`
	IsInvoice       bool         `json:"is_invoice"`
	InvoiceNumber   string       `json:"invoice_number,omitempty"`
	OrderNumber     string       `json:"order_number,omitempty"`
	HasAttachment   bool         `json:"has_attachment"`
	AttachmentCount int          `json:"attachment_count"`
	Confidence      float64      `json:"confidence"`
	Source          AmountSource `json:"source"`
}

// ClassifyFailure marks one email that blew up during batch processing.
// Failures never abort the batch; they ride along with the good records.
type ClassifyFailure struct {
	EmailID string `json:"email_id"`
	Reason  string `json:"reason"`
}

// BatchClassification is the outcome of classifying a batch of emails.
type BatchClassification struct {
	BatchID      string            `json:"batch_id"`
	Records      []PurchaseRecord  `json:"records"`
	Failures     []ClassifyFailure `json:"failures,omitempty"`
	Skipped      int               `json:"skipped"` // filtered out, not failures
	TotalEmails  int               `json:"total_emails"`
	ProcessingMS int64             `json:"processing_ms"`
}
