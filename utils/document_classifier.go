package utils

import (
	"strings"

	"github.com/spendlens/purchase-parser/dto"
)

var (
	warrantyDocKeywords = []string{
		"warranty", "guarantee", "coverage", "repair", "replacement",
		"defect", "malfunction", "service center", "claim",
	}
	refundDocKeywords = []string{
		"refund", "return", "money back", "reimbursement", "credited back",
		"refund initiated", "refund processed", "amount refunded",
	}
	invoiceDocKeywords = []string{
		"invoice", "bill", "receipt", "order confirmation", "payment",
		"total amount", "gst", "tax invoice", "purchase", "amount due",
	}
)

// ClassifyDocument decides the document family from its text and filename.
// Two keyword hits promote a family, a filename hint promotes it outright,
// and warranty outranks refund outranks invoice when several families score.
func ClassifyDocument(text, filename string) dto.DocumentType {
	textLower := strings.ToLower(text)
	nameLower := strings.ToLower(filename)

	if keywordScore(textLower, warrantyDocKeywords) >= 2 || strings.Contains(nameLower, "warranty") {
		return dto.DocTypeWarranty
	}
	if keywordScore(textLower, refundDocKeywords) >= 2 || strings.Contains(nameLower, "refund") {
		return dto.DocTypeRefund
	}
	if keywordScore(textLower, invoiceDocKeywords) >= 2 ||
		strings.Contains(nameLower, "invoice") || strings.Contains(nameLower, "receipt") {
		return dto.DocTypeInvoice
	}
	return dto.DocTypeGeneric
}

// ClassificationConfidence is the score reported for a classified document.
func ClassificationConfidence(docType dto.DocumentType) float64 {
	if docType == dto.DocTypeGeneric {
		return 0.6
	}
	return 0.8
}

func keywordScore(textLower string, keywords []string) int {
	score := 0
	for _, kw := range keywords {
		if strings.Contains(textLower, kw) {
			score++
		}
	}
	return score
}
