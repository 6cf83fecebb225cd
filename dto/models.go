package dto

type DocumentType string

const (
	DocTypeInvoice  DocumentType = "invoice"
	DocTypeWarranty DocumentType = "warranty"
	DocTypeRefund   DocumentType = "refund"
	DocTypeGeneric  DocumentType = "document"
)

// ProductLine is a single "qty x name ... price" row from an invoice.
type ProductLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type InvoiceDetails struct {
	Products      []ProductLine `json:"products,omitempty"`
	TaxAmount     *float64      `json:"tax_amount,omitempty"`
	ShippingCost  *float64      `json:"shipping_cost,omitempty"`
	Discount      *float64      `json:"discount,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	TotalAmount   *float64      `json:"total_amount,omitempty"`
	OrderNumber   string        `json:"order_number,omitempty"`
	PONumber      string        `json:"po_number,omitempty"`
}

type WarrantyDetails struct {
	Product      string   `json:"product,omitempty"`
	Period       string   `json:"period,omitempty"` // e.g. "2 years"
	PeriodDays   int      `json:"period_days,omitempty"`
	PurchaseDate string   `json:"purchase_date,omitempty"`
	ExpiryDate   string   `json:"expiry_date,omitempty"`
	Provider     string   `json:"provider,omitempty"`
	Terms        []string `json:"terms,omitempty"`
	Contact      string   `json:"contact,omitempty"`
}

type RefundDetails struct {
	Amount    *float64 `json:"amount,omitempty"`
	Status    string   `json:"status,omitempty"` // processed, pending, rejected
	Method    string   `json:"method,omitempty"`
	Reason    string   `json:"reason,omitempty"`
	Reference string   `json:"reference,omitempty"`
}

// DocumentRecord is the structured result of parsing one document
// (a PDF attachment, an uploaded file, or a block of free text).
type DocumentRecord struct {
	DocumentType  DocumentType     `json:"document_type"`
	Filename      string           `json:"filename,omitempty"`
	Vendor        string           `json:"vendor"`
	Amount        *float64         `json:"amount,omitempty"`
	Date          string           `json:"date,omitempty"`
	InvoiceNumber string           `json:"invoice_number,omitempty"`
	Invoice       *InvoiceDetails  `json:"invoice_data,omitempty"`
	Warranty      *WarrantyDetails `json:"warranty_data,omitempty"`
	Refund        *RefundDetails   `json:"refund_data,omitempty"`
	RawText       string           `json:"raw_text,omitempty"`
	Confidence    float64          `json:"confidence"`
}
