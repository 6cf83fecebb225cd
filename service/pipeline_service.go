package service

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/spendlens/purchase-parser/dto"
	"github.com/spendlens/purchase-parser/logger"
	"github.com/spendlens/purchase-parser/utils"
)

// Classification confidence policy. The numbers are part of the contract:
// downstream consumers treat >0.5 as "trust the amount".
const (
	confidencePDF         = 0.9
	confidenceEmailBody   = 0.7
	confidenceSubjectOnly = 0.6
	confidenceHybrid      = 0.65
	confidenceKeywordOnly = 0.3
)

// PipelineService is the email classification core: filter, extract,
// classify, assemble. Each call is a straight-line decision over one email;
// there is no cross-email state, so calls are safe to run concurrently.
type PipelineService struct {
	filter      *utils.MailFilter
	amounts     *utils.AmountExtractor
	vendors     *utils.VendorExtractor
	identifiers *utils.IdentifierExtractor
	extractor   *TextExtractor
	log         zerolog.Logger
}

func NewPipelineService(extractor *TextExtractor) *PipelineService {
	return &PipelineService{
		filter:      utils.NewMailFilter(utils.DefaultFilterConfig()),
		amounts:     utils.NewAmountExtractor(),
		vendors:     utils.NewVendorExtractor(utils.DefaultVendorTable()),
		identifiers: utils.NewIdentifierExtractor(),
		extractor:   extractor,
		log:         logger.New("pipeline"),
	}
}

// Filter exposes the sender/subject filter for callers that pre-screen
// before fetching bodies.
func (s *PipelineService) Filter() *utils.MailFilter {
	return s.filter
}

// Classify runs the full pipeline over one email. Returns nil when the email
// is not a purchase: filter rejected it, no amount anywhere, and no PDF
// attached. The returned record is a fresh value every call; re-classifying
// the same email yields an equal but distinct record.
func (s *PipelineService) Classify(email dto.EmailRecord) *dto.PurchaseRecord {
	candidate := s.filter.IsCandidate(email.Subject, email.From)

	pdfs := email.PDFAttachments()
	var pdfText string
	var upi *utils.UPIPayment
	for _, att := range pdfs {
		// One corrupt attachment must not sink the email.
		extraction := s.extractPDFSafe(att.Data)
		if extraction.Text != "" {
			if pdfText != "" {
				pdfText += "\n"
			}
			pdfText += extraction.Text
		}
		if upi == nil {
			upi = extraction.UPI
		}
	}

	pdfAmount, pdfAmountOK := s.amounts.Extract(pdfText)
	if !pdfAmountOK && upi != nil && upi.Amount > 0 {
		pdfAmount, pdfAmountOK = upi.Amount, true
	}
	bodyAmount, bodyAmountOK := s.amounts.Extract(email.BodyText)
	subjectAmount, subjectAmountOK := s.amounts.ExtractFromSubject(email.Subject)

	hasAmount := pdfAmountOK || bodyAmountOK || subjectAmountOK
	hasPDF := len(pdfs) > 0

	if !candidate && !hasAmount && !hasPDF {
		return nil
	}

	var amount *float64
	var confidence float64
	var source dto.AmountSource

	switch {
	case pdfAmountOK:
		amount, source, confidence = &pdfAmount, dto.SourcePDF, confidencePDF
	case bodyAmountOK && hasPDF:
		amount, source, confidence = &bodyAmount, dto.SourceHybrid, confidenceHybrid
	case bodyAmountOK:
		amount, source, confidence = &bodyAmount, dto.SourceEmail, confidenceEmailBody
	case subjectAmountOK && hasPDF:
		amount, source, confidence = &subjectAmount, dto.SourceHybrid, confidenceHybrid
	case subjectAmountOK:
		amount, source, confidence = &subjectAmount, dto.SourceEmail, confidenceSubjectOnly
	case hasPDF:
		source, confidence = dto.SourceHybrid, confidenceKeywordOnly
	default:
		source, confidence = dto.SourceEmail, confidenceKeywordOnly
	}

	vendor := s.resolveVendor(email, pdfText, upi)
	ids := s.identifiers.Extract(email.Subject + "\n" + email.BodyText + "\n" + pdfText)

	record := &dto.PurchaseRecord{
		EmailID:         email.ID,
		Vendor:          vendor,
		Amount:          amount,
		Date:            email.Date,
		Subject:         email.Subject,
		IsInvoice:       hasAmount || hasPDF,
		InvoiceNumber:   ids.InvoiceNumber,
		OrderNumber:     ids.OrderNumber,
		HasAttachment:   len(email.Attachments) > 0,
		AttachmentCount: len(email.Attachments),
		Confidence:      confidence,
		Source:          source,
	}

	s.log.Debug().
		Str("email_id", email.ID).
		Str("vendor", record.Vendor).
		Str("source", string(record.Source)).
		Float64("confidence", record.Confidence).
		Msg("email classified")

	return record
}

// extractPDFSafe wraps the extraction chain with a panic guard so malformed
// attachment bytes surface as "no text" instead of killing the worker.
func (s *PipelineService) extractPDFSafe(data []byte) (extraction PDFExtraction) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn().Interface("panic", r).Msg("pdf extraction panicked, treating as empty")
			extraction = PDFExtraction{}
		}
	}()
	return s.extractor.ExtractPDF(data)
}

// resolveVendor walks the fallback chain: From display name, known-vendor
// scan over subject/body, document text, UPI payee name, unknown label.
func (s *PipelineService) resolveVendor(email dto.EmailRecord, pdfText string, upi *utils.UPIPayment) string {
	vendor := s.vendors.FromEmail(email.From, email.Subject, email.BodyText)
	if vendor != utils.UnknownVendor {
		return vendor
	}
	if pdfText != "" {
		if vendor = s.vendors.FromDocument(pdfText); vendor != utils.UnknownVendor {
			return vendor
		}
	}
	if upi != nil && strings.TrimSpace(upi.PayeeName) != "" {
		return strings.TrimSpace(upi.PayeeName)
	}
	return utils.UnknownVendor
}
