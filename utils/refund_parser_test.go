package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRefundProcessed(t *testing.T) {
	r := NewRefundParser()

	text := `
		Refund processed successfully.
		Amount Refunded: ₹1,299.00
		Refund ID: RFD123456
		The amount will be credited to your original payment method.
	`

	details := r.Parse(text)
	// "will be credited" also appears, but a processed phrase wins.
	assert.Equal(t, RefundProcessed, details.Status)
	assert.NotNil(t, details.Amount)
	assert.Equal(t, 1299.0, *details.Amount)
	assert.Equal(t, "RFD123456", details.Reference)
	assert.Equal(t, "Original Payment Method", details.Method)
}

func TestParseRefundStatuses(t *testing.T) {
	r := NewRefundParser()

	assert.Equal(t, RefundPending, r.Parse("Your refund initiated today will reach you in 5-7 days").Status)
	assert.Equal(t, RefundRejected, r.Parse("Refund rejected: the item is not eligible for refund").Status)
	assert.Equal(t, RefundUnknown, r.Parse("We have received your return request").Status)
}

func TestParseRefundReason(t *testing.T) {
	r := NewRefundParser()

	details := r.Parse("Refund initiated. Reason: Item damaged in transit")
	assert.Equal(t, RefundPending, details.Status)
	assert.Equal(t, "Item damaged in transit", details.Reason)
}
