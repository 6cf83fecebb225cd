package utils

import (
	"testing"

	"github.com/spendlens/purchase-parser/dto"
	"github.com/stretchr/testify/assert"
)

func TestClassifyDocument(t *testing.T) {
	warranty := "This warranty covers repair and replacement of defective parts."
	assert.Equal(t, dto.DocTypeWarranty, ClassifyDocument(warranty, "scan.pdf"))

	refund := "Your refund has been initiated and the amount will be credited back."
	assert.Equal(t, dto.DocTypeRefund, ClassifyDocument(refund, "mail.pdf"))

	invoice := "Tax Invoice\nGST: 557.46\nTotal Amount: 3553.46"
	assert.Equal(t, dto.DocTypeInvoice, ClassifyDocument(invoice, "doc.pdf"))

	assert.Equal(t, dto.DocTypeGeneric, ClassifyDocument("Meeting agenda for Monday", "notes.pdf"))
}

func TestClassifyDocumentFilenameHint(t *testing.T) {
	// One keyword is not enough on its own, but the filename promotes it.
	text := "Coverage details enclosed."
	assert.Equal(t, dto.DocTypeGeneric, ClassifyDocument(text, "scan.pdf"))
	assert.Equal(t, dto.DocTypeWarranty, ClassifyDocument(text, "Samsung_Warranty_Card.pdf"))
	assert.Equal(t, dto.DocTypeInvoice, ClassifyDocument("see attached", "invoice_march.pdf"))
}

func TestClassificationConfidence(t *testing.T) {
	assert.Equal(t, 0.8, ClassificationConfidence(dto.DocTypeInvoice))
	assert.Equal(t, 0.8, ClassificationConfidence(dto.DocTypeWarranty))
	assert.Equal(t, 0.6, ClassificationConfidence(dto.DocTypeGeneric))
}
