package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crlf(s string) string {
	return strings.ReplaceAll(s, "\n", "\r\n")
}

func TestParseEMLPlainText(t *testing.T) {
	raw := crlf(`From: Amazon.in <no-reply@amazon.in>
To: user@example.com
Subject: Your order has been shipped
Date: Mon, 02 Jun 2025 15:04:05 +0000
Message-ID: <abc123@mail.amazon.in>
Content-Type: text/plain; charset=utf-8

Your order of Atomberg Renesa Fan has shipped.
Order Total: Rs. 3,499.00
`)

	email, err := NewEMLService().Parse(strings.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, "Your order has been shipped", email.Subject)
	assert.Contains(t, email.From, "no-reply@amazon.in")
	assert.Contains(t, email.BodyText, "Order Total: Rs. 3,499.00")
	assert.NotEmpty(t, email.ID)
	assert.NotEmpty(t, email.Date)
	assert.Empty(t, email.Attachments)
}

func TestParseEMLMultipartPrefersPlain(t *testing.T) {
	raw := crlf(`From: Swiggy <noreply@swiggy.in>
Subject: Order delivered
Content-Type: multipart/alternative; boundary="b1"

--b1
Content-Type: text/plain; charset=utf-8

Paid: Rs. 249.00
--b1
Content-Type: text/html; charset=utf-8

<html><body><b>Paid:</b> Rs. 999.00</body></html>
--b1--
`)

	email, err := NewEMLService().Parse(strings.NewReader(raw))
	require.NoError(t, err)

	assert.Contains(t, email.BodyText, "Paid: Rs. 249.00")
	assert.NotContains(t, email.BodyText, "999.00")
}

func TestParseEMLHTMLFallback(t *testing.T) {
	raw := crlf(`From: Zomato <no-reply@zomato.com>
Subject: Your receipt
Content-Type: text/html; charset=utf-8

<html><body><p>Total paid: <b>Rs. 310.00</b></p></body></html>
`)

	email, err := NewEMLService().Parse(strings.NewReader(raw))
	require.NoError(t, err)

	assert.Contains(t, email.BodyText, "Total paid: Rs. 310.00")
	assert.NotContains(t, email.BodyText, "<b>")
}

func TestParseEMLWithPDFAttachment(t *testing.T) {
	raw := crlf(`From: billing@atomberg.com
Subject: Invoice attached
Content-Type: multipart/mixed; boundary="outer"

--outer
Content-Type: text/plain

Invoice attached for your purchase.
--outer
Content-Type: application/pdf
Content-Disposition: attachment; filename="invoice.pdf"
Content-Transfer-Encoding: base64

JVBERi0xLjQgKFRvdGFsOiBScy4gNTAwKQ==
--outer--
`)

	email, err := NewEMLService().Parse(strings.NewReader(raw))
	require.NoError(t, err)

	require.Len(t, email.Attachments, 1)
	att := email.Attachments[0]
	assert.Equal(t, "invoice.pdf", att.Filename)
	assert.True(t, att.IsPDF())
	assert.True(t, strings.HasPrefix(string(att.Data), "%PDF-1.4"))
}

func TestParseEMLGarbage(t *testing.T) {
	_, err := NewEMLService().Parse(strings.NewReader("not an email at all"))
	// A bare line parses as an empty header block; the service must not
	// panic either way.
	_ = err
}
