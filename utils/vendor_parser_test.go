package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVendorFromEmail(t *testing.T) {
	v := NewVendorExtractor(DefaultVendorTable())

	// Display name wins when it is a real name.
	assert.Equal(t, "Amazon.in", v.FromEmail(`"Amazon.in" <no-reply@amazon.in>`, "Your order", ""))

	// A generic display name falls through to the known-vendor scan.
	assert.Equal(t, "Flipkart", v.FromEmail("<no-reply@unknownshop.xyz>", "Your Flipkart order has shipped", ""))
	assert.Equal(t, "Swiggy", v.FromEmail(`"Notifications" <mailer@relay.example>`, "Order update", "Thanks for ordering with Swiggy!"))

	assert.Equal(t, "Unknown Vendor", v.FromEmail("<no-reply@shop1234.xyz>", "Order update", "Thanks for shopping with us"))
}

func TestVendorScanOrderIsDeterministic(t *testing.T) {
	v := NewVendorExtractor(DefaultVendorTable())

	// Subject mentions two brands; the table order decides, every time.
	subject := "Your Flipkart order paid via Paytm"
	first := v.FromEmail("<noreply@relay.example>", subject, "")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, v.FromEmail("<noreply@relay.example>", subject, ""))
	}
	assert.Equal(t, "Flipkart", first)
}

func TestVendorFromDocument(t *testing.T) {
	v := NewVendorExtractor(DefaultVendorTable())

	text := `
		Sold by: Cloudtail India Ltd
		Invoice No: INV-001
	`
	assert.Equal(t, "Cloudtail India Ltd", v.FromDocument(text))

	// Letterhead line fallback.
	letterhead := "Quality Furnishings Ltd\nGSTIN 27AABCU9603R1ZM\nTotal: 4500"
	assert.Equal(t, "Quality Furnishings Ltd", v.FromDocument(letterhead))

	assert.Equal(t, "Unknown Vendor", v.FromDocument("12345 67890\n!!!"))
}
