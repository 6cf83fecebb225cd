package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInvoiceDetails(t *testing.T) {
	p := NewInvoiceParser()

	text := `
		Tax Invoice
		2 x Wireless Mouse ₹1,299.00
		1 x USB-C Cable ₹499.00
		Subtotal: ₹3,097.00
		GST: ₹557.46
		Shipping Charges: ₹99.00
		Discount: -₹200.00
		Grand Total: ₹3,553.46
		Payment Method: UPI
		PO Number: PO-4455
		Order ID: OD998877
	`

	details := p.Parse(text)

	assert.Equal(t, 2, len(details.Products))
	assert.Equal(t, "Wireless Mouse", details.Products[0].Name)
	assert.Equal(t, 2, details.Products[0].Quantity)
	assert.Equal(t, 1299.0, details.Products[0].Price)
	assert.Equal(t, "USB-C Cable", details.Products[1].Name)

	assert.NotNil(t, details.TotalAmount)
	assert.Equal(t, 3553.46, *details.TotalAmount)
	assert.NotNil(t, details.TaxAmount)
	assert.Equal(t, 557.46, *details.TaxAmount)
	assert.NotNil(t, details.ShippingCost)
	assert.Equal(t, 99.0, *details.ShippingCost)
	assert.NotNil(t, details.Discount)
	assert.Equal(t, 200.0, *details.Discount)

	assert.Equal(t, "UPI", details.PaymentMethod)
	assert.Equal(t, "PO-4455", details.PONumber)
	assert.Equal(t, "OD998877", details.OrderNumber)
}

func TestParseInvoiceDetailsSparseText(t *testing.T) {
	p := NewInvoiceParser()

	details := p.Parse("Thanks for your payment of ₹450 by credit card")

	assert.Equal(t, 0, len(details.Products))
	assert.NotNil(t, details.TotalAmount)
	assert.Equal(t, 450.0, *details.TotalAmount)
	assert.Nil(t, details.TaxAmount)
	assert.Equal(t, "Credit Card", details.PaymentMethod)
}
