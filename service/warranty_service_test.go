package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/purchase-parser/utils"
)

func newTestWarranty() *WarrantyService {
	svc := NewWarrantyService(NewTextExtractor(NewPDFProcessor(), nil, false), 4)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestAnalyzeTextWarrantyService(t *testing.T) {
	svc := newTestWarranty()

	analysis := svc.AnalyzeText(`Product: Renesa Smart Fan
Warranty Period: 2 years
Purchase Date: 15/01/2024
For service call 1800-123-4567`)

	require.NotNil(t, analysis.Warranty)
	assert.Equal(t, "2 years", analysis.Warranty.Period)
	assert.Equal(t, "2026-01-14", analysis.Warranty.ExpiryDate)
	assert.Equal(t, utils.RiskLow, analysis.RiskAssessment)
	require.NotNil(t, analysis.DaysUntilExpiry)
	assert.Greater(t, *analysis.DaysUntilExpiry, 30)
}

func TestAnalyzeBatchWarrantyIsolation(t *testing.T) {
	svc := newTestWarranty()

	good := []byte(`%PDF-1.4
BT (Warranty Certificate) Tj (Product: Mixer Grinder MX-450) Tj ET
BT (Warranty Period: 1 year from purchase) Tj ET
BT (Purchase Date: 10/05/2025 service center claims only) Tj ET`)
	bad := []byte{0x00, 0x01, 0x02}

	summary := svc.AnalyzeBatch(context.Background(), []NamedFile{
		{Name: "warranty.pdf", Data: good},
		{Name: "corrupt.pdf", Data: bad},
	})

	assert.Equal(t, 2, summary.TotalFiles)
	assert.Equal(t, 1, summary.ProcessedFiles)
	assert.Equal(t, 1, summary.FailedFiles)
	assert.Equal(t, 1, summary.WarrantyDocs)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, "warranty.pdf", summary.Results[0].Filename)
}
