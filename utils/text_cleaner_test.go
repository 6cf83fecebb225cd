package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	raw := `\x41\x42 endstream Total: ₹500


parts follow \324`
	got := CleanText(raw)

	assert.NotContains(t, got, `\x41`)
	assert.NotContains(t, got, "endstream")
	assert.NotContains(t, got, `\324`)
	assert.Contains(t, got, "Total: ₹500")
}

func TestIsReadableText(t *testing.T) {
	assert.True(t, IsReadableText("Invoice for your order. Total: ₹1,299 payable by card."))
	assert.False(t, IsReadableText("hi"))
	assert.False(t, IsReadableText(strings.Repeat("Ã©µ", 20)))
	assert.False(t, IsReadableText(""))
}

func TestStripHTML(t *testing.T) {
	body := `<html><style>p{color:red}</style><body><p>Total: &#8377;1,299</p><p>Tom &amp; Jerry Pvt Ltd</p></body></html>`
	got := StripHTML(body)

	assert.Equal(t, "Total: ₹1,299 Tom & Jerry Pvt Ltd", got)
}
