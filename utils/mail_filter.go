package utils

import (
	"regexp"
	"strings"
)

// FilterConfig holds the static keyword/domain tables driving the cheap
// pre-filter. Tables are fixed at construction so tests can substitute
// their own without touching package state.
type FilterConfig struct {
	// DenyKeywords reject an email outright when found in subject or sender.
	DenyKeywords []string
	// InvoiceKeywords accept an email when found in the subject.
	InvoiceKeywords []string
	// VendorDomains accept an email when the sender matches one.
	VendorDomains []string
	// LegitimateVendors are transactional senders that are only treated as
	// promotional when the subject carries an explicit campaign term.
	LegitimateVendors []string
	// PromoSubjectKeywords mark mail from legitimate vendors as promotional.
	PromoSubjectKeywords []string
	// PromoBodyKeywords mark any mail as promotional when found in the body.
	PromoBodyKeywords []string
	// PurchaseKeywords rescue forwarded/replied mail from the promo filter.
	PurchaseKeywords []string
	// StatementKeywords and StatementDomains identify credit card statements.
	StatementKeywords []string
	StatementDomains  []string
}

// DefaultFilterConfig returns the tables used in production.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		DenyKeywords: []string{
			"unsubscribe", "newsletter", "marketing", "promotion", "promotional",
			"offer", "offers", "deal", "deals", "discount", "sale", "save big",
			"price drop", "price alert", "flash sale", "clearance", "coupon",
			"voucher", "free shipping", "limited time", "exclusive offer",
			"webinar", "survey", "feedback matters", "opinion matters",
			"career", "job alert", "interview", "opportunity", "apply now",
			"commented", "posted", "shared", "mentioned you", "friend request",
			"connection request", "tagged you", "followed you",
			"one-time password",
		},
		InvoiceKeywords: []string{
			"invoice", "receipt", "bill", "payment", "order", "purchase",
			"confirmation", "booking", "ticket", "delivery", "transaction",
			"statement", "subscription renewal", "charged", "paid",
		},
		VendorDomains: []string{
			"amazon", "flipkart", "myntra", "ajio", "nykaa", "bigbasket",
			"swiggy", "zomato", "dominos", "uber", "ola", "rapido",
			"paytm", "phonepe", "razorpay", "gpay", "cred", "billdesk",
			"bookmyshow", "district", "ticketnew", "irctc", "makemytrip",
			"goibibo", "oyorooms", "airbnb",
			"netflix", "hotstar", "spotify", "primevideo",
			"airtel", "jio", "vodafone", "bsnl", "actcorp",
			"hdfcbank", "icicibank", "axisbank", "sbi",
			"atomberg",
		},
		LegitimateVendors: []string{
			"swiggy", "zomato", "amazon", "myntra", "flipkart", "cred",
			"oyorooms", "uber", "ola", "bookmyshow", "paytm", "phonepe",
			"gpay", "razorpay", "district", "ticketnew", "atomberg",
			"austin wood", "kwa",
		},
		PromoSubjectKeywords: []string{
			"newsletter", "update", "offers", "deals", "discount", "sale",
			"promotion", "subscription", "member", "unsubscribe",
		},
		PromoBodyKeywords: []string{
			"unsubscribe from", "manage preferences", "email preferences",
			"marketing communications", "promotional content", "sponsored",
			"advertisement", "don't miss out", "limited time", "exclusive offer",
			"special deal", "flash sale", "discount code", "while supplies last",
			"act now", "hurry up", "last chance", "ending soon", "shop now",
		},
		PurchaseKeywords: []string{
			"order", "delivered", "invoice", "confirmation", "purchase",
			"payment", "booking", "ticket", "warranty", "water charges",
		},
		StatementKeywords: []string{
			"credit card statement", "card statement", "bank statement",
			"credit card bill", "card bill",
		},
		StatementDomains: []string{
			"hdfcbank.com", "icicibank.com", "sbicard.com",
			"axisbank.com", "kotak.com",
		},
	}
}

// MailFilter decides whether an email is worth deep inspection. All checks
// are pure functions of the header strings handed in.
type MailFilter struct {
	cfg           FilterConfig
	subjectAmount *regexp.Regexp
}

func NewMailFilter(cfg FilterConfig) *MailFilter {
	return &MailFilter{
		cfg:           cfg,
		subjectAmount: regexp.MustCompile(`(?i)(?:₹|rs\.?|inr|\$|usd|€|eur)\s*\d`),
	}
}

// IsCandidate reports whether the email should proceed to full extraction.
// The deny list is checked first and short-circuits: an email matching both
// a deny term and an allow term is rejected. That ordering is what keeps
// social-notification mail with currency-looking strings out of the
// purchase set.
func (f *MailFilter) IsCandidate(subject, from string) bool {
	subjectLower := strings.ToLower(subject)
	fromLower := strings.ToLower(from)

	for _, keyword := range f.cfg.DenyKeywords {
		if strings.Contains(subjectLower, keyword) || strings.Contains(fromLower, keyword) {
			return false
		}
	}

	for _, keyword := range f.cfg.InvoiceKeywords {
		if strings.Contains(subjectLower, keyword) {
			return true
		}
	}

	for _, domain := range f.cfg.VendorDomains {
		if strings.Contains(fromLower, domain) {
			return true
		}
	}

	return f.subjectAmount.MatchString(subject)
}

// IsCreditCardStatement reports whether the email is a card/bank statement.
// Statements parse like invoices but are not purchases, so callers skip them
// before the pipeline runs.
func (f *MailFilter) IsCreditCardStatement(subject, from string) bool {
	subjectLower := strings.ToLower(subject)
	fromLower := strings.ToLower(from)

	for _, keyword := range f.cfg.StatementKeywords {
		if strings.Contains(subjectLower, keyword) || strings.Contains(fromLower, keyword) {
			return true
		}
	}

	for _, domain := range f.cfg.StatementDomains {
		if strings.Contains(fromLower, domain) {
			return true
		}
	}

	return false
}

// IsPromotional reports whether the email is campaign mail. Known
// transactional vendors get the benefit of the doubt: their mail is only
// promotional when the subject says so. Forwarded or replied mail carrying
// a purchase keyword is never promotional.
func (f *MailFilter) IsPromotional(subject, from, body string) bool {
	subjectLower := strings.ToLower(subject)
	fromLower := strings.ToLower(from)
	bodyLower := strings.ToLower(body)

	for _, vendor := range f.cfg.LegitimateVendors {
		if strings.Contains(fromLower, vendor) {
			for _, keyword := range f.cfg.PromoSubjectKeywords {
				if strings.Contains(subjectLower, keyword) {
					return true
				}
			}
			return false
		}
	}

	if strings.HasPrefix(subjectLower, "fwd:") || strings.HasPrefix(subjectLower, "re:") {
		for _, keyword := range f.cfg.PurchaseKeywords {
			if strings.Contains(subjectLower, keyword) {
				return false
			}
		}
	}

	for _, keyword := range f.cfg.DenyKeywords {
		if strings.Contains(subjectLower, keyword) {
			return true
		}
	}

	for _, keyword := range f.cfg.PromoBodyKeywords {
		if strings.Contains(bodyLower, keyword) {
			return true
		}
	}

	return false
}
