package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/rs/zerolog"

	"github.com/spendlens/purchase-parser/dto"
	"github.com/spendlens/purchase-parser/logger"
	"github.com/spendlens/purchase-parser/utils"
)

// EMLService turns a raw RFC-822 message into the normalized EmailRecord
// the pipeline consumes: text/plain preferred, HTML stripped as fallback,
// PDF attachments captured with their bytes.
type EMLService struct {
	log zerolog.Logger
}

func NewEMLService() *EMLService {
	return &EMLService{log: logger.New("eml")}
}

// Parse reads one message. Individual parts that fail to decode are
// skipped; only an unreadable envelope is an error.
func (s *EMLService) Parse(r io.Reader) (*dto.EmailRecord, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}

	record := &dto.EmailRecord{}

	header := mr.Header
	if subject, err := header.Subject(); err == nil {
		record.Subject = subject
	}
	if id, err := header.MessageID(); err == nil && id != "" {
		record.ID = id
	}
	if from, err := header.AddressList("From"); err == nil && len(from) > 0 {
		record.From = from[0].String()
	}
	if date, err := header.Date(); err == nil && !date.IsZero() {
		record.Date = date.Format(time.RFC3339)
	}

	var plainText, htmlText strings.Builder
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.log.Debug().Err(err).Msg("skipping unreadable mime part")
			continue
		}

		switch h := part.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, _ := h.ContentType()
			body, err := io.ReadAll(part.Body)
			if err != nil {
				continue
			}
			switch {
			case strings.HasPrefix(contentType, "text/plain"):
				plainText.Write(body)
				plainText.WriteString("\n")
			case strings.HasPrefix(contentType, "text/html"):
				htmlText.WriteString(utils.StripHTML(string(body)))
				htmlText.WriteString("\n")
			}
		case *mail.AttachmentHeader:
			filename, _ := h.Filename()
			contentType, _, _ := h.ContentType()
			data, err := io.ReadAll(part.Body)
			if err != nil {
				s.log.Debug().Err(err).Str("filename", filename).Msg("skipping unreadable attachment")
				continue
			}
			record.Attachments = append(record.Attachments, dto.EmailAttachment{
				Filename:  filename,
				MimeType:  contentType,
				SizeBytes: int64(len(data)),
				Data:      data,
			})
		}
	}

	// Plain parts win; HTML only fills in when no plain part existed.
	record.BodyText = strings.TrimSpace(plainText.String())
	if record.BodyText == "" {
		record.BodyText = strings.TrimSpace(htmlText.String())
	}

	return record, nil
}
