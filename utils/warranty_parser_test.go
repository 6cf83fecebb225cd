package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodToDays(t *testing.T) {
	assert.Equal(t, 730, PeriodToDays(2, "years"))
	assert.Equal(t, 365, PeriodToDays(1, "yr"))
	assert.Equal(t, 180, PeriodToDays(6, "months"))
	assert.Equal(t, 14, PeriodToDays(2, "weeks"))
	assert.Equal(t, 10, PeriodToDays(10, "days"))
	assert.Equal(t, 0, PeriodToDays(3, "lightyears"))
}

func TestParseWarranty(t *testing.T) {
	w := NewWarrantyParser()

	text := `
		Atomberg Technologies
		Product: Renesa Smart Fan
		Warranty Period: 2 years
		Purchase Date: 15/01/2024
		Terms and conditions apply to physical damage claims
		For service call 1800-123-4567
	`

	details := w.Parse(text)
	assert.Equal(t, "2 years", details.Period)
	assert.Equal(t, 730, details.PeriodDays)
	assert.Equal(t, "Renesa Smart Fan", details.Product)
	assert.Equal(t, "2024-01-15", details.PurchaseDate)
	assert.Equal(t, "2026-01-14", details.ExpiryDate)
	assert.Equal(t, "1800-123-4567", details.Contact)
	assert.Equal(t, 1, len(details.Terms))
}

func TestAnalyzeWarrantyRisk(t *testing.T) {
	w := NewWarrantyParser()

	text := `
		Product: Renesa Smart Fan
		Warranty Period: 2 years
		Purchase Date: 15/01/2024
		For service call 1800-123-4567
	`

	// Four days before expiry.
	analysis := w.Analyze(text, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, RiskHigh, analysis.RiskAssessment)
	assert.Equal(t, "Warranty expires within a week", analysis.ExpiryWarning)
	assert.NotNil(t, analysis.DaysUntilExpiry)
	assert.Equal(t, 4, *analysis.DaysUntilExpiry)
	assert.InDelta(t, 1.0, analysis.Confidence, 0.001)

	// Well inside the coverage window.
	analysis = w.Analyze(text, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, RiskLow, analysis.RiskAssessment)
	assert.Equal(t, "", analysis.ExpiryWarning)

	// Expired.
	analysis = w.Analyze(text, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, RiskHigh, analysis.RiskAssessment)
	assert.Equal(t, "Warranty has expired", analysis.ExpiryWarning)
}

func TestAnalyzeWarrantyKeywordsOnly(t *testing.T) {
	w := NewWarrantyParser()

	analysis := w.Analyze("This product carries a guarantee against manufacturing defects.", time.Now())
	assert.Equal(t, RiskUnknown, analysis.RiskAssessment)
	assert.InDelta(t, 0.3, analysis.Confidence, 0.001)

	analysis = w.Analyze("Completely unrelated text about gardening.", time.Now())
	assert.InDelta(t, 0.1, analysis.Confidence, 0.001)
}
