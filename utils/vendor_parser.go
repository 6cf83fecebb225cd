package utils

import (
	"net/mail"
	"regexp"
	"strings"
)

// UnknownVendor is the fallback label when no vendor signal resolves.
const UnknownVendor = "Unknown Vendor"

// VendorEntry maps a match token to the canonical display name.
type VendorEntry struct {
	Match   string
	Display string
}

// DefaultVendorTable lists the known transactional brands, longest and most
// specific first. Matching is case-insensitive on word boundaries; the slice
// order keeps resolution deterministic.
func DefaultVendorTable() []VendorEntry {
	return []VendorEntry{
		{"austin wood", "Austin Wood"},
		{"bookmyshow", "BookMyShow"},
		{"makemytrip", "MakeMyTrip"},
		{"ticketnew", "TicketNew"},
		{"bigbasket", "BigBasket"},
		{"razorpay", "Razorpay"},
		{"atomberg", "Atomberg"},
		{"vodafone", "Vodafone"},
		{"flipkart", "Flipkart"},
		{"phonepe", "PhonePe"},
		{"blinkit", "Blinkit"},
		{"dominos", "Domino's"},
		{"hotstar", "Hotstar"},
		{"netflix", "Netflix"},
		{"spotify", "Spotify"},
		{"amazon", "Amazon"},
		{"myntra", "Myntra"},
		{"swiggy", "Swiggy"},
		{"zomato", "Zomato"},
		{"airtel", "Airtel"},
		{"paytm", "Paytm"},
		{"irctc", "IRCTC"},
		{"nykaa", "Nykaa"},
		{"zepto", "Zepto"},
		{"ajio", "AJIO"},
		{"cred", "CRED"},
		{"gpay", "GPay"},
		{"oyo", "OYO"},
		{"uber", "Uber"},
		{"jio", "Jio"},
		{"ola", "Ola"},
		{"kwa", "KWA"},
	}
}

var genericSenderNames = []string{
	"noreply", "no-reply", "no reply", "donotreply", "do-not-reply",
	"notification", "notifications", "mailer-daemon", "alert", "alerts",
	"support", "info",
}

// VendorExtractor resolves a human-readable vendor name from email headers
// or document text.
type VendorExtractor struct {
	known        []VendorEntry
	knownMatch   []*regexp.Regexp
	labelRes     []*regexp.Regexp
	forwardedRes []*regexp.Regexp
}

// NewVendorExtractor builds an extractor over the given vendor table.
func NewVendorExtractor(table []VendorEntry) *VendorExtractor {
	knownMatch := make([]*regexp.Regexp, len(table))
	for i, entry := range table {
		knownMatch[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(entry.Match) + `\b`)
	}

	nameGroup := `([A-Za-z&\. ][A-Za-z&\.\- ]+)`
	labels := []string{
		`(?i)invoice\s+from[:\s]+` + nameGroup,
		`(?i)bill\s+to[:\s]+` + nameGroup,
		`(?i)sold\s+by[:\s]+` + nameGroup,
		`(?i)vendor[:\s]+` + nameGroup,
		`(?i)company[:\s]+` + nameGroup,
		`(?i)merchant[:\s]+` + nameGroup,
		`(?i)from[:\s]+` + nameGroup,
	}
	labelRes := make([]*regexp.Regexp, len(labels))
	for i, expr := range labels {
		labelRes[i] = regexp.MustCompile(expr)
	}

	forwarded := []string{
		`(?i)(?:order|invoice|confirmation)\s+(?:for|with|from)\s+([A-Za-z&\.\- ]+?)(?:\s+order|\s+delivered|\s+confirmation|$)`,
		`(?i)([A-Za-z&\.\- ]+?)\s*-\s*(?:order|invoice|confirmation|delivered)`,
		`(?i)([A-Za-z&\.\- ]+?)\s*:\s*(?:payment|fees|charges)`,
	}
	forwardedRes := make([]*regexp.Regexp, len(forwarded))
	for i, expr := range forwarded {
		forwardedRes[i] = regexp.MustCompile(expr)
	}

	return &VendorExtractor{
		known:        table,
		knownMatch:   knownMatch,
		labelRes:     labelRes,
		forwardedRes: forwardedRes,
	}
}

// FromEmail resolves the vendor for an email: the From header display name
// first, then a known-vendor scan over subject and body, then the fallback
// label. A display name like "noreply" counts as unresolved.
func (v *VendorExtractor) FromEmail(from, subject, body string) string {
	if name := v.displayName(from); name != "" {
		return name
	}

	if vendor, ok := v.scanKnown(subject); ok {
		return vendor
	}
	if vendor, ok := v.scanKnown(body); ok {
		return vendor
	}

	return UnknownVendor
}

// FromDocument resolves a vendor from extracted document text: labeled
// patterns first, then forwarded-mail shapes, then an early line that reads
// like a company name.
func (v *VendorExtractor) FromDocument(text string) string {
	for _, re := range v.labelRes {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			candidate := strings.TrimSpace(m[1])
			if len(candidate) > 3 && len(candidate) < 100 {
				return candidate
			}
		}
	}

	for _, re := range v.forwardedRes {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			candidate := cleanForwardedVendor(m[1])
			if len(candidate) > 2 && len(candidate) < 50 {
				return strings.Title(strings.ToLower(candidate))
			}
		}
	}

	if vendor, ok := v.scanKnown(text); ok {
		return vendor
	}

	// An early all-letters line of plausible length usually is the
	// letterhead company name.
	lines := strings.Split(text, "\n")
	limit := len(lines)
	if limit > 10 {
		limit = 10
	}
	companyLine := regexp.MustCompile(`^[A-Za-z&\. ]+$`)
	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)
		if len(line) > 5 && len(line) < 50 && companyLine.MatchString(line) {
			return line
		}
	}

	return UnknownVendor
}

// displayName pulls the display-name part out of a From header. Returns ""
// when there is no usable name.
func (v *VendorExtractor) displayName(from string) string {
	name := ""
	if addr, err := mail.ParseAddress(from); err == nil {
		name = addr.Name
	} else if i := strings.Index(from, "<"); i > 0 {
		name = from[:i]
	}

	name = strings.Trim(strings.TrimSpace(name), `"'`)
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	nameLower := strings.ToLower(name)
	for _, generic := range genericSenderNames {
		if strings.Contains(nameLower, generic) {
			return ""
		}
	}

	return name
}

func (v *VendorExtractor) scanKnown(text string) (string, bool) {
	for i, re := range v.knownMatch {
		if re.MatchString(text) {
			return v.known[i].Display, true
		}
	}
	return "", false
}

func cleanForwardedVendor(s string) string {
	s = strings.TrimSpace(s)
	s = regexp.MustCompile(`(?i)^(with|from|at|order|invoice|confirmation|for)\s+`).ReplaceAllString(s, "")
	s = regexp.MustCompile(`(?i)\s+(is\s+delivered|order|invoice|confirmation|delivered)$`).ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
