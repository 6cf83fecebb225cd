package utils

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// ErrNotUPIPayload marks QR content that is not a UPI payment link.
var ErrNotUPIPayload = errors.New("not a upi payment payload")

// UPIPayment is the payment intent carried by a UPI QR code on an invoice.
type UPIPayment struct {
	PayeeAddress string
	PayeeName    string
	Amount       float64
	Reference    string
	Note         string
}

// ParseUPIPayload decodes a upi://pay deep link scanned off an invoice QR.
// The payee address is mandatory; the amount is zero when the code leaves
// it to the payer.
func ParseUPIPayload(payload string) (*UPIPayment, error) {
	if !strings.HasPrefix(strings.ToLower(payload), "upi://") {
		return nil, ErrNotUPIPayload
	}

	u, err := url.Parse(payload)
	if err != nil {
		return nil, ErrNotUPIPayload
	}

	q := u.Query()
	payment := &UPIPayment{
		PayeeAddress: q.Get("pa"),
		PayeeName:    q.Get("pn"),
		Reference:    q.Get("tr"),
		Note:         q.Get("tn"),
	}
	if payment.PayeeAddress == "" || !strings.Contains(payment.PayeeAddress, "@") {
		return nil, ErrNotUPIPayload
	}

	if am := q.Get("am"); am != "" {
		if value, err := strconv.ParseFloat(am, 64); err == nil && value > 0 && value <= MaxPlausibleAmount {
			payment.Amount = value
		}
	}

	return payment, nil
}
