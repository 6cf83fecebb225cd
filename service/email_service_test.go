package service

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/purchase-parser/client"
	"github.com/spendlens/purchase-parser/dto"
)

func newTestEmailService(t *testing.T) *EmailService {
	t.Helper()
	cache, err := client.NewDedupCache("", time.Hour)
	require.NoError(t, err)

	pipeline := newTestPipeline()
	return NewEmailService(pipeline, newTestDocuments(), cache)
}

func TestProcessEmailClassifies(t *testing.T) {
	svc := newTestEmailService(t)

	resp, err := svc.ProcessEmail(context.Background(), &dto.ProcessEmailRequest{
		MessageID: "m-1",
		Subject:   "Your Swiggy order receipt",
		From:      "Swiggy <noreply@swiggy.in>",
		Date:      "2025-08-01T12:00:00Z",
		Body:      "Order total: ₹420.00 paid via UPI",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	require.NotNil(t, resp.Purchase)
	require.NotNil(t, resp.Purchase.Amount)
	assert.Equal(t, 420.0, *resp.Purchase.Amount)
	assert.Equal(t, "Swiggy", resp.Purchase.Vendor)
	assert.Empty(t, resp.SkipReason)
}

func TestProcessEmailDuplicateShortCircuits(t *testing.T) {
	svc := newTestEmailService(t)

	req := &dto.ProcessEmailRequest{
		MessageID: "m-dup",
		Subject:   "Invoice attached",
		From:      "billing@amazon.in",
		Body:      "Total: ₹99",
	}

	first, err := svc.ProcessEmail(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, first.Success)

	second, err := svc.ProcessEmail(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, second.Success)
	assert.Equal(t, dto.SkipDuplicate, second.SkipReason)
	assert.Nil(t, second.Purchase)
}

func TestProcessEmailSkipsStatements(t *testing.T) {
	svc := newTestEmailService(t)

	resp, err := svc.ProcessEmail(context.Background(), &dto.ProcessEmailRequest{
		MessageID: "m-stmt",
		Subject:   "Your credit card statement for August",
		From:      "statements@hdfcbank.com",
		Body:      "Total amount due: ₹15,230.00",
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, dto.SkipCreditCardStatement, resp.SkipReason)
	assert.Equal(t, 0.0, resp.Confidence)
}

func TestProcessEmailSkipsPromotional(t *testing.T) {
	svc := newTestEmailService(t)

	resp, err := svc.ProcessEmail(context.Background(), &dto.ProcessEmailRequest{
		MessageID: "m-promo",
		Subject:   "Mega sale offers inside",
		From:      "Amazon <deals@amazon.in>",
		Body:      "Don't miss out on these deals! Shop now.",
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, dto.SkipPromotional, resp.SkipReason)
}

func TestProcessEmailCorruptAttachmentIsolated(t *testing.T) {
	svc := newTestEmailService(t)

	resp, err := svc.ProcessEmail(context.Background(), &dto.ProcessEmailRequest{
		MessageID: "m-att",
		Subject:   "Invoice for your order",
		From:      "orders@flipkart.com",
		Body:      "Grand Total: ₹1,100.00",
		Attachments: []dto.AttachmentPayload{
			{
				Filename:      "invoice.pdf",
				MimeType:      "application/pdf",
				ContentBase64: "!!!not-base64!!!",
			},
		},
	})
	require.NoError(t, err)

	// The attachment is dropped, the body still classifies.
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Purchase)
	assert.Equal(t, 1, resp.TotalAttachments)
	assert.Equal(t, 0, resp.ProcessedCount)
}

func TestProcessEmailDeduplicatesAttachments(t *testing.T) {
	svc := newTestEmailService(t)

	payload := dto.AttachmentPayload{Filename: "same.pdf", MimeType: "application/pdf"}
	resp, err := svc.ProcessEmail(context.Background(), &dto.ProcessEmailRequest{
		MessageID:   "m-dupfiles",
		Subject:     "Receipt",
		From:        "billing@uber.com",
		Body:        "Total: $8.00",
		Attachments: []dto.AttachmentPayload{payload, payload, payload},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.DuplicatesRemoved)
}

func TestDecodeBase64Content(t *testing.T) {
	want := []byte("%PDF-1.4 test payload")

	std := base64.StdEncoding.EncodeToString(want)
	got, err := decodeBase64Content(std)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// URL-safe alphabet with padding stripped, the Gmail API shape.
	urlSafe := base64.RawURLEncoding.EncodeToString([]byte{0xfb, 0xff, 0x01, 0x02, 0x03})
	got, err = decodeBase64Content(urlSafe)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xfb, 0xff, 0x01, 0x02, 0x03}, got)

	_, err = decodeBase64Content("definitely !!! not base64")
	assert.Error(t, err)
}
