package utils

import (
	"regexp"
	"strings"

	"github.com/spendlens/purchase-parser/dto"
)

// Refund status values.
const (
	RefundProcessed = "processed"
	RefundPending   = "pending"
	RefundRejected  = "rejected"
	RefundUnknown   = "unknown"
)

var (
	refundProcessedPhrases = []string{
		"refund processed", "refund completed", "amount credited",
		"refund successful", "credited back", "refunded successfully",
		"has been refunded",
	}
	refundPendingPhrases = []string{
		"refund initiated", "refund requested", "being processed",
		"refund pending", "under process", "will be credited",
		"refund is on its way",
	}
	refundRejectedPhrases = []string{
		"refund rejected", "refund declined", "refund denied",
		"cannot be refunded", "not eligible for refund",
	}
)

var refundMethodTable = []struct {
	match   string
	display string
}{
	{"original payment method", "Original Payment Method"},
	{"bank account", "Bank Account"},
	{"store credit", "Store Credit"},
	{"credit card", "Credit Card"},
	{"debit card", "Debit Card"},
	{"gift card", "Gift Card"},
	{"wallet", "Wallet"},
	{"upi", "UPI"},
}

// RefundParser extracts refund state and amounts from document text.
type RefundParser struct {
	amountRes []*regexp.Regexp
	reasonRe  *regexp.Regexp
	refRe     *regexp.Regexp
	methodRe  *regexp.Regexp
	hasDigit  *regexp.Regexp
}

// NewRefundParser compiles the refund patterns.
func NewRefundParser() *RefundParser {
	currency := `(?:₹|rs\.?|inr|\$|€)?\s*`
	money := `([\d,]+(?:\.\d{1,2})?)`

	amounts := []string{
		`(?i)refund(?:ed)?\s*(?:amount|of)?\s*[:\-]?\s*` + currency + money,
		`(?i)amount\s+refunded[:\s]*` + currency + money,
		`(?i)` + currency + money + `\s*(?:will\s+be|has\s+been)\s*(?:credited|refunded)`,
	}
	amountRes := make([]*regexp.Regexp, len(amounts))
	for i, expr := range amounts {
		amountRes[i] = regexp.MustCompile(expr)
	}

	methods := make([]string, len(refundMethodTable))
	for i, rm := range refundMethodTable {
		methods[i] = rm.match
	}

	return &RefundParser{
		amountRes: amountRes,
		reasonRe:  regexp.MustCompile(`(?i)reason[:\s]+([A-Za-z][A-Za-z0-9 ,\-]{4,100})`),
		refRe:     regexp.MustCompile(`(?i)(?:refund\s*(?:id|reference|ref\.?)|arn)[:\s]*([A-Za-z0-9\-]{4,30})`),
		methodRe:  regexp.MustCompile(`(?i)\b(` + strings.Join(methods, "|") + `)\b`),
		hasDigit:  regexp.MustCompile(`\d`),
	}
}

// Parse extracts the refund details found in text.
func (r *RefundParser) Parse(text string) *dto.RefundDetails {
	details := &dto.RefundDetails{
		Status: refundStatus(strings.ToLower(text)),
	}

	for _, re := range r.amountRes {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		if amount, ok := parseMoney(m[1]); ok {
			details.Amount = &amount
			break
		}
	}

	if m := r.methodRe.FindStringSubmatch(text); len(m) > 1 {
		details.Method = refundMethodDisplay(m[1])
	}
	if m := r.reasonRe.FindStringSubmatch(text); len(m) > 1 {
		details.Reason = strings.TrimSpace(m[1])
	}
	if m := r.refRe.FindStringSubmatch(text); len(m) > 1 && r.hasDigit.MatchString(m[1]) {
		details.Reference = m[1]
	}

	return details
}

// refundStatus walks the phrase sets in outcome order, so a mail that says
// both "refund initiated" and "amount credited" reads as processed.
func refundStatus(textLower string) string {
	for _, phrase := range refundProcessedPhrases {
		if strings.Contains(textLower, phrase) {
			return RefundProcessed
		}
	}
	for _, phrase := range refundPendingPhrases {
		if strings.Contains(textLower, phrase) {
			return RefundPending
		}
	}
	for _, phrase := range refundRejectedPhrases {
		if strings.Contains(textLower, phrase) {
			return RefundRejected
		}
	}
	return RefundUnknown
}

func refundMethodDisplay(match string) string {
	matchLower := strings.ToLower(match)
	for _, rm := range refundMethodTable {
		if rm.match == matchLower {
			return rm.display
		}
	}
	return match
}
