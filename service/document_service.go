package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/pool"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/spendlens/purchase-parser/client"
	"github.com/spendlens/purchase-parser/dto"
	"github.com/spendlens/purchase-parser/logger"
	"github.com/spendlens/purchase-parser/utils"
)

// NamedFile pairs uploaded bytes with their filename for batch parsing.
type NamedFile struct {
	Name string
	Data []byte
}

// DocumentService parses standalone financial documents: uploaded PDFs,
// downloaded PDFs, and free text.
type DocumentService struct {
	extractor *TextExtractor
	fetcher   *client.URLFetcher
	vendors   *utils.VendorExtractor
	amounts   *utils.AmountExtractor
	ids       *utils.IdentifierExtractor
	dates     *utils.DateExtractor
	invoices  *utils.InvoiceParser
	warranty  *utils.WarrantyParser
	refunds   *utils.RefundParser
	workers   int
	log       zerolog.Logger
}

func NewDocumentService(extractor *TextExtractor, fetcher *client.URLFetcher, workers int) *DocumentService {
	if workers <= 0 {
		workers = 10
	}
	return &DocumentService{
		extractor: extractor,
		fetcher:   fetcher,
		vendors:   utils.NewVendorExtractor(utils.DefaultVendorTable()),
		amounts:   utils.NewAmountExtractor(),
		ids:       utils.NewIdentifierExtractor(),
		dates:     utils.NewDateExtractor(),
		invoices:  utils.NewInvoiceParser(),
		warranty:  utils.NewWarrantyParser(),
		refunds:   utils.NewRefundParser(),
		workers:   workers,
		log:       logger.New("documents"),
	}
}

// ParseDocument runs the extraction chain over PDF bytes and builds a
// structured record. A PDF with no recoverable text is an error here —
// unlike the email pipeline, a direct parse has no other signal to fall
// back on.
func (s *DocumentService) ParseDocument(data []byte, filename string) (*dto.DocumentRecord, error) {
	extraction := s.extractor.ExtractPDF(data)
	if strings.TrimSpace(extraction.Text) == "" && extraction.UPI == nil {
		return nil, fmt.Errorf("no text could be extracted from %s", filename)
	}

	record := s.buildRecord(extraction.Text, filename)
	record.Confidence = utils.ClassificationConfidence(record.DocumentType)

	if upi := extraction.UPI; upi != nil {
		if record.Amount == nil && upi.Amount > 0 {
			amount := upi.Amount
			record.Amount = &amount
		}
		if record.Vendor == utils.UnknownVendor && strings.TrimSpace(upi.PayeeName) != "" {
			record.Vendor = strings.TrimSpace(upi.PayeeName)
		}
	}

	s.log.Info().
		Str("filename", filename).
		Str("type", string(record.DocumentType)).
		Float64("confidence", record.Confidence).
		Msg("document parsed")
	return record, nil
}

// AnalyzeText classifies and extracts from free text, no PDF involved.
// Confidence is the additive extraction score rather than the per-type
// base, because there is no document structure to lean on.
func (s *DocumentService) AnalyzeText(text, filename string) *dto.DocumentRecord {
	record := s.buildRecord(utils.CleanText(text), filename)
	record.Confidence = extractionScore(text, record)
	return record
}

// ParseURL downloads the PDF and parses it.
func (s *DocumentService) ParseURL(ctx context.Context, rawURL string) (*dto.DocumentRecord, error) {
	data, filename, err := s.fetcher.FetchPDF(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return s.ParseDocument(data, filename)
}

// ParseBatch parses many files on the worker pool. Per-file failures land
// in the error list; the batch always completes.
func (s *DocumentService) ParseBatch(ctx context.Context, files []NamedFile) dto.ParseBatchResponse {
	start := time.Now()
	response := dto.ParseBatchResponse{
		BatchID:    uuid.NewString(),
		TotalFiles: len(files),
	}

	var mu sync.Mutex

	worker := pool.WorkerFunc[NamedFile](func(_ context.Context, file NamedFile) error {
		record, err := s.parseSafe(file)

		mu.Lock()
		defer mu.Unlock()
		response.ProcessedFiles++
		if err != nil {
			response.Failed++
			response.Errors = append(response.Errors, fmt.Sprintf("%s: %v", file.Name, err))
			return err
		}
		if record.Confidence > 0.5 {
			response.Successful++
		}
		response.Results = append(response.Results, *record)
		return nil
	})

	p := pool.New[NamedFile](s.workers, worker).WithContinueOnError()
	if err := p.Go(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to start parse pool")
		response.ProcessingMS = time.Since(start).Milliseconds()
		return response
	}
	for _, file := range files {
		p.Submit(file)
	}
	if err := p.Close(ctx); err != nil && ctx.Err() == nil {
		s.log.Warn().Err(err).Msg("parse batch finished with file errors")
	}

	response.ProcessingMS = time.Since(start).Milliseconds()
	return response
}

func (s *DocumentService) parseSafe(file NamedFile) (record *dto.DocumentRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			record = nil
			err = fmt.Errorf("parse panicked: %v", r)
		}
	}()
	return s.ParseDocument(file.Data, file.Name)
}

// buildRecord extracts the common fields and the per-type detail block.
func (s *DocumentService) buildRecord(text, filename string) *dto.DocumentRecord {
	docType := utils.ClassifyDocument(text, filename)

	record := &dto.DocumentRecord{
		DocumentType: docType,
		Filename:     filename,
		Vendor:       s.vendors.FromDocument(text),
		Date:         s.dates.Extract(text),
		RawText:      text,
	}

	if amount, ok := s.amounts.Extract(text); ok {
		record.Amount = &amount
	}
	ids := s.ids.Extract(text)
	record.InvoiceNumber = ids.InvoiceNumber

	switch docType {
	case dto.DocTypeInvoice:
		record.Invoice = s.invoices.Parse(text)
	case dto.DocTypeWarranty:
		record.Warranty = s.warranty.Parse(text)
	case dto.DocTypeRefund:
		record.Refund = s.refunds.Parse(text)
	}

	return record
}

// extractionScore grades how much usable structure came out of free text:
// 0.2 for a non-trivial text, 0.3 for an amount, 0.2 for an invoice number,
// 0.2 for a vendor, 0.1 for a currency marker, capped at 1.0.
func extractionScore(text string, record *dto.DocumentRecord) float64 {
	score := 0.0
	if len(strings.TrimSpace(text)) > 50 {
		score += 0.2
	}
	if record.Amount != nil {
		score += 0.3
	}
	if record.InvoiceNumber != "" {
		score += 0.2
	}
	if record.Vendor != "" && record.Vendor != utils.UnknownVendor {
		score += 0.2
	}
	lower := strings.ToLower(text)
	if strings.Contains(text, "₹") || strings.Contains(lower, "rs.") ||
		strings.Contains(lower, "inr") || strings.Contains(text, "$") {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
