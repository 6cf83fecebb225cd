package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/spendlens/purchase-parser/client"
	"github.com/spendlens/purchase-parser/dto"
	"github.com/spendlens/purchase-parser/logger"
)

// EmailService is the transport-facing wrapper around the pipeline: it
// owns dedup, the statement/promotional skips, and attachment decoding.
// The pipeline core underneath stays free of caches and I/O.
type EmailService struct {
	pipeline  *PipelineService
	documents *DocumentService
	cache     client.DedupCache
	log       zerolog.Logger
}

func NewEmailService(pipeline *PipelineService, documents *DocumentService, cache client.DedupCache) *EmailService {
	return &EmailService{
		pipeline:  pipeline,
		documents: documents,
		cache:     cache,
		log:       logger.New("email"),
	}
}

// ProcessEmail classifies one inbound email and parses its PDF attachments.
// Duplicates, card statements, and promotional mail short-circuit with a
// named skip reason. One corrupt attachment never fails the email.
func (s *EmailService) ProcessEmail(ctx context.Context, req *dto.ProcessEmailRequest) (*dto.ProcessEmailResponse, error) {
	response := &dto.ProcessEmailResponse{
		MessageID:        req.MessageID,
		Documents:        []dto.DocumentRecord{},
		TotalAttachments: len(req.Attachments),
	}

	fresh, err := s.cache.MarkSeen(ctx, req.MessageID)
	if err != nil {
		// A broken cache should not block classification; log and continue.
		s.log.Warn().Err(err).Str("message_id", req.MessageID).Msg("dedup check failed")
	} else if !fresh {
		response.SkipReason = dto.SkipDuplicate
		return response, nil
	}

	filter := s.pipeline.Filter()
	if filter.IsCreditCardStatement(req.Subject, req.From) {
		response.SkipReason = dto.SkipCreditCardStatement
		return response, nil
	}
	if filter.IsPromotional(req.Subject, req.From, req.Body) {
		response.SkipReason = dto.SkipPromotional
		return response, nil
	}

	email, duplicates := s.ToRecord(req)
	response.DuplicatesRemoved = duplicates

	if record := s.pipeline.Classify(email); record != nil {
		response.Success = true
		response.Purchase = record
		response.Confidence = record.Confidence
	}

	for _, att := range email.PDFAttachments() {
		doc, err := s.parseAttachment(att)
		if err != nil {
			s.log.Warn().Err(err).
				Str("message_id", req.MessageID).
				Str("filename", att.Filename).
				Msg("attachment parse failed, continuing")
			continue
		}
		response.Documents = append(response.Documents, *doc)
		response.ProcessedCount++
	}

	return response, nil
}

// ToRecord converts a transport request into the pipeline's EmailRecord.
// Repeated filenames within one message are dropped and counted; an
// attachment whose content fails to decode is kept without bytes so the
// body signal still counts.
func (s *EmailService) ToRecord(req *dto.ProcessEmailRequest) (dto.EmailRecord, int) {
	email := dto.EmailRecord{
		ID:       req.MessageID,
		Subject:  req.Subject,
		From:     req.From,
		Date:     req.Date,
		BodyText: req.Body,
	}

	duplicates := 0
	seenFiles := make(map[string]bool)
	for _, payload := range req.Attachments {
		key := req.MessageID + ":" + payload.Filename
		if seenFiles[key] {
			duplicates++
			continue
		}
		seenFiles[key] = true

		att := dto.EmailAttachment{
			Filename:  payload.Filename,
			MimeType:  payload.MimeType,
			SizeBytes: payload.SizeBytes,
		}
		if payload.ContentBase64 != "" {
			data, err := decodeBase64Content(payload.ContentBase64)
			if err != nil {
				s.log.Warn().Err(err).
					Str("message_id", req.MessageID).
					Str("filename", payload.Filename).
					Msg("attachment decode failed, skipping attachment")
			} else {
				att.Data = data
			}
		}
		email.Attachments = append(email.Attachments, att)
	}

	return email, duplicates
}

func (s *EmailService) parseAttachment(att dto.EmailAttachment) (doc *dto.DocumentRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("attachment parse panicked: %v", r)
		}
	}()
	return s.documents.ParseDocument(att.Data, att.Filename)
}

// decodeBase64Content decodes attachment content, trying standard base64
// first and the URL-safe alphabet second. Providers strip padding, so it
// is repaired before each attempt.
func decodeBase64Content(content string) ([]byte, error) {
	content = strings.TrimSpace(content)
	if pad := len(content) % 4; pad != 0 {
		content += strings.Repeat("=", 4-pad)
	}

	if data, err := base64.StdEncoding.DecodeString(content); err == nil {
		return data, nil
	}
	data, err := base64.URLEncoding.DecodeString(content)
	if err != nil {
		return nil, fmt.Errorf("content is not valid base64: %w", err)
	}
	return data, nil
}
