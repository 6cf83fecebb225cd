package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAmountPicksMaximum(t *testing.T) {
	e := NewAmountExtractor()

	text := `
		Wireless Mouse  ₹100
		Shipping        ₹50
		Total           ₹550
	`

	amount, ok := e.Extract(text)
	assert.True(t, ok)
	assert.Equal(t, 550.0, amount)
}

func TestExtractAmountCurrencyForms(t *testing.T) {
	e := NewAmountExtractor()

	for _, text := range []string{
		"Paid Rs. 1,234.56 via UPI",
		"Paid INR 1,234.56 via UPI",
		"Paid ₹1,234.56 via UPI",
		"Amount: 1,234.56",
		"Payment of Rs.1234.56 received",
		"1,234.56/- credited",
	} {
		amount, ok := e.Extract(text)
		assert.True(t, ok, text)
		assert.Equal(t, 1234.56, amount, text)
	}
}

func TestExtractAmountPlausibilityBound(t *testing.T) {
	e := NewAmountExtractor()

	// A lone seven-digit figure is an order id or loyalty balance, not money.
	_, ok := e.Extract("You could win ₹2,000,000 in the lucky draw")
	assert.False(t, ok)

	// When a plausible amount exists alongside, the implausible one is ignored.
	amount, ok := e.Extract("Prize pool ₹2,000,000. Ticket price ₹500 only")
	assert.True(t, ok)
	assert.Equal(t, 500.0, amount)

	// Zero is not an amount.
	_, ok = e.Extract("Balance due: ₹0")
	assert.False(t, ok)
}

func TestExtractAmountFromSubject(t *testing.T) {
	e := NewAmountExtractor()

	amount, ok := e.ExtractFromSubject("Payment successful - ₹1,299.00")
	assert.True(t, ok)
	assert.Equal(t, 1299.0, amount)

	_, ok = e.ExtractFromSubject("Your order #8334412 has shipped")
	assert.False(t, ok)
}

func TestExtractAmountLabeledWithoutSymbol(t *testing.T) {
	e := NewAmountExtractor()

	amount, ok := e.Extract("Grand Total 2,499")
	assert.True(t, ok)
	assert.Equal(t, 2499.0, amount)

	// Labeled order ids still parse as amounts; the maximum rule buries
	// them whenever a larger true total is present.
	amount, ok = e.Extract("Order 12345, Total ₹89,999")
	assert.True(t, ok)
	assert.Equal(t, 89999.0, amount)
}
