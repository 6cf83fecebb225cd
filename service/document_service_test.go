package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/purchase-parser/dto"
)

func newTestDocuments() *DocumentService {
	return NewDocumentService(NewTextExtractor(NewPDFProcessor(), nil, false), nil, 4)
}

func TestAnalyzeTextInvoice(t *testing.T) {
	docs := newTestDocuments()

	text := `TAX INVOICE
Sold by: Atomberg Technologies
Invoice Number: INV-88421
Date: 12/03/2025
1 x Ceiling Fan Renesa   ₹3,499.00
GST: ₹549.00
Grand Total: ₹4,048.00
Payment Method: UPI`

	record := docs.AnalyzeText(text, "invoice.txt")

	assert.Equal(t, dto.DocTypeInvoice, record.DocumentType)
	require.NotNil(t, record.Amount)
	assert.Equal(t, 4048.0, *record.Amount)
	assert.Equal(t, "INV-88421", record.InvoiceNumber)
	assert.Equal(t, "2025-03-12", record.Date)
	require.NotNil(t, record.Invoice)
	assert.Equal(t, "UPI", record.Invoice.PaymentMethod)

	// text + amount + invoice number + vendor + currency marker
	assert.Equal(t, 1.0, record.Confidence)
}

func TestAnalyzeTextLowSignal(t *testing.T) {
	docs := newTestDocuments()

	record := docs.AnalyzeText("ref 98", "note.txt")

	assert.Equal(t, dto.DocTypeGeneric, record.DocumentType)
	assert.Nil(t, record.Amount)
	assert.Equal(t, 0.0, record.Confidence)
}

func TestAnalyzeTextWarranty(t *testing.T) {
	docs := newTestDocuments()

	text := `Warranty Card
Product: Mixer Grinder MX-450
This product carries a 2 year warranty against manufacturing defects.
For claims contact service@example.com. Repair or replacement at the
discretion of the service center.`

	record := docs.AnalyzeText(text, "warranty_card.txt")

	assert.Equal(t, dto.DocTypeWarranty, record.DocumentType)
	require.NotNil(t, record.Warranty)
	assert.Equal(t, 730, record.Warranty.PeriodDays)
}

func TestParseDocumentNoText(t *testing.T) {
	docs := newTestDocuments()

	_, err := docs.ParseDocument([]byte{0x00, 0xFF, 0x10}, "empty.pdf")
	assert.Error(t, err)
}

func TestParseBatchIsolatesFailures(t *testing.T) {
	docs := newTestDocuments()

	good := []byte(`%PDF-1.4
BT (TAX INVOICE) Tj (Bill To: Suresh Kumar) Tj ET
BT (Invoice Number: INV-555) Tj (Total Amount: Rs. 850.00) Tj ET
BT (Payment received via UPI on 01/02/2025 thank you) Tj ET`)
	bad := []byte{0x00, 0x01}

	result := docs.ParseBatch(context.Background(), []NamedFile{
		{Name: "good.pdf", Data: good},
		{Name: "bad.pdf", Data: bad},
	})

	assert.Equal(t, 2, result.TotalFiles)
	assert.Equal(t, 2, result.ProcessedFiles)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "good.pdf", result.Results[0].Filename)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "bad.pdf")
}

func TestExtractionScoreCapped(t *testing.T) {
	amount := 100.0
	record := &dto.DocumentRecord{
		Amount:        &amount,
		InvoiceNumber: "INV-1",
		Vendor:        "Amazon",
	}
	score := extractionScore("₹100 invoice text long enough to clear the length gate easily", record)
	assert.Equal(t, 1.0, score)
}
