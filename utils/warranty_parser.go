package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spendlens/purchase-parser/dto"
)

// Risk levels reported by warranty analysis.
const (
	RiskHigh    = "high"
	RiskMedium  = "medium"
	RiskLow     = "low"
	RiskUnknown = "unknown"
)

const shortWarrantyDays = 30

var termKeywords = []string{
	"terms", "conditions", "not covered", "excludes", "exclusion",
	"void", "limited to", "subject to",
}

// WarrantyParser extracts warranty coverage details from document text and
// scores the remaining coverage.
type WarrantyParser struct {
	dates      *DateExtractor
	periodRes  []*regexp.Regexp
	productRe  *regexp.Regexp
	providerRe *regexp.Regexp
	expiryRe   *regexp.Regexp
	emailRe    *regexp.Regexp
	phoneRe    *regexp.Regexp
}

// NewWarrantyParser compiles the warranty patterns.
func NewWarrantyParser() *WarrantyParser {
	unit := `(year|yr|month|mon|week|day)s?`
	periods := []string{
		`(?i)(\d{1,3})\s*` + unit + `\s*(?:warranty|guarantee)`,
		`(?i)warranty\s*(?:period|of|for)?\s*[:\-]?\s*(\d{1,3})\s*` + unit,
		`(?i)guarantee\s*(?:period|of|for)?\s*[:\-]?\s*(\d{1,3})\s*` + unit,
		`(?i)covered\s+for\s+(\d{1,3})\s*` + unit,
	}
	periodRes := make([]*regexp.Regexp, len(periods))
	for i, expr := range periods {
		periodRes[i] = regexp.MustCompile(expr)
	}

	return &WarrantyParser{
		dates:      NewDateExtractor(),
		periodRes:  periodRes,
		productRe:  regexp.MustCompile(`(?i)(?:product|item|model|appliance)[:\s]+([A-Za-z0-9][A-Za-z0-9 \-]{2,60})`),
		providerRe: regexp.MustCompile(`(?i)(?:warranty\s+(?:by|from|provider)|manufacturer|provided\s+by)[:\s]+([A-Za-z][A-Za-z\. ]{2,50})`),
		expiryRe:   regexp.MustCompile(`(?i)(?:expiry|expires?|valid\s+(?:till|until|upto))[:\s on]*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}|\d{4}-\d{1,2}-\d{1,2})`),
		emailRe:    regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
		phoneRe:    regexp.MustCompile(`(?:1800[\- ]?\d{3}[\- ]?\d{3,4}|(?:\+91[\- ]?)?[6-9]\d{9})`),
	}
}

// PeriodToDays converts a warranty period to days. Units collapse to their
// calendar-free equivalents: a year is 365 days, a month 30, a week 7.
func PeriodToDays(count int, unit string) int {
	switch strings.ToLower(strings.TrimSuffix(unit, "s")) {
	case "year", "yr":
		return count * 365
	case "month", "mon":
		return count * 30
	case "week":
		return count * 7
	case "day":
		return count
	default:
		return 0
	}
}

// Parse extracts the warranty details found in text. Missing fields stay
// zero; the caller decides what a detail-free result means.
func (w *WarrantyParser) Parse(text string) *dto.WarrantyDetails {
	details := &dto.WarrantyDetails{}

	for _, re := range w.periodRes {
		m := re.FindStringSubmatch(text)
		if len(m) < 3 {
			continue
		}
		count, err := strconv.Atoi(m[1])
		if err != nil || count <= 0 {
			continue
		}
		details.Period = m[1] + " " + pluralUnit(m[2], count)
		details.PeriodDays = PeriodToDays(count, m[2])
		break
	}

	if m := w.productRe.FindStringSubmatch(text); len(m) > 1 {
		details.Product = strings.TrimSpace(m[1])
	}
	if m := w.providerRe.FindStringSubmatch(text); len(m) > 1 {
		details.Provider = strings.TrimSpace(m[1])
	}

	details.PurchaseDate = w.dates.Extract(text)

	if m := w.expiryRe.FindStringSubmatch(text); len(m) > 1 {
		if normalized, ok := w.dates.Normalize(m[1]); ok {
			details.ExpiryDate = normalized
		}
	}
	if details.ExpiryDate == "" && details.PurchaseDate != "" && details.PeriodDays > 0 {
		if purchased, err := time.Parse("2006-01-02", details.PurchaseDate); err == nil {
			details.ExpiryDate = purchased.AddDate(0, 0, details.PeriodDays).Format("2006-01-02")
		}
	}

	details.Terms = w.extractTerms(text)
	details.Contact = w.extractContact(text)

	return details
}

// Analyze parses the text and scores the coverage relative to now. The
// caller fills in the filename.
func (w *WarrantyParser) Analyze(text string, now time.Time) dto.WarrantyAnalysis {
	details := w.Parse(text)

	analysis := dto.WarrantyAnalysis{
		Warranty:       details,
		RiskAssessment: RiskUnknown,
		Confidence:     w.confidence(details, text),
	}

	if details.Period != "" {
		analysis.KeyFindings = append(analysis.KeyFindings, "Warranty period: "+details.Period)
	}
	if details.Product != "" {
		analysis.KeyFindings = append(analysis.KeyFindings, "Product: "+details.Product)
	}
	if details.Provider != "" {
		analysis.KeyFindings = append(analysis.KeyFindings, "Provider: "+details.Provider)
	}
	if details.Contact != "" {
		analysis.KeyFindings = append(analysis.KeyFindings, "Support contact: "+details.Contact)
	}
	if n := len(details.Terms); n > 0 {
		analysis.KeyFindings = append(analysis.KeyFindings, fmt.Sprintf("%d coverage terms listed", n))
	}
	if details.PeriodDays > 0 && details.PeriodDays <= shortWarrantyDays {
		analysis.KeyFindings = append(analysis.KeyFindings, "Short warranty period")
	}

	if details.ExpiryDate != "" {
		if expiry, err := time.Parse("2006-01-02", details.ExpiryDate); err == nil {
			daysLeft := int(expiry.Sub(now).Hours() / 24)
			analysis.DaysUntilExpiry = &daysLeft

			switch {
			case daysLeft < 0:
				analysis.RiskAssessment = RiskHigh
				analysis.ExpiryWarning = "Warranty has expired"
			case daysLeft <= 7:
				analysis.RiskAssessment = RiskHigh
				analysis.ExpiryWarning = "Warranty expires within a week"
			case daysLeft <= 30:
				analysis.RiskAssessment = RiskMedium
				analysis.ExpiryWarning = "Warranty expires within 30 days"
			default:
				analysis.RiskAssessment = RiskLow
			}
		}
	}

	analysis.Recommendations = w.recommendations(details, analysis.RiskAssessment)

	return analysis
}

func (w *WarrantyParser) recommendations(details *dto.WarrantyDetails, risk string) []string {
	var recs []string
	switch risk {
	case RiskHigh:
		recs = append(recs, "File any pending claims immediately or look into extended coverage")
	case RiskMedium:
		recs = append(recs, "Test the product now and raise issues before coverage ends")
	}
	if details.Contact == "" {
		recs = append(recs, "Locate the service center contact before you need a claim")
	}
	recs = append(recs, "Keep the purchase invoice with this document for claim processing")
	return recs
}

// confidence scores how much of the warranty structure was recovered.
// Period is the anchor; product, contact and terms each add a little.
func (w *WarrantyParser) confidence(details *dto.WarrantyDetails, text string) float64 {
	if details.Period != "" {
		score := 0.8
		if details.Product != "" {
			score += 0.1
		}
		if details.Contact != "" {
			score += 0.1
		}
		if len(details.Terms) > 0 {
			score += 0.1
		}
		if score > 1.0 {
			score = 1.0
		}
		return score
	}
	if keywordScore(strings.ToLower(text), warrantyDocKeywords) > 0 {
		return 0.3
	}
	return 0.1
}

// extractTerms collects up to five lines that read like coverage terms.
func (w *WarrantyParser) extractTerms(text string) []string {
	var terms []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 15 || len(line) > 200 {
			continue
		}
		lineLower := strings.ToLower(line)
		for _, kw := range termKeywords {
			if strings.Contains(lineLower, kw) {
				terms = append(terms, line)
				break
			}
		}
		if len(terms) >= 5 {
			break
		}
	}
	return terms
}

func (w *WarrantyParser) extractContact(text string) string {
	if m := w.phoneRe.FindString(text); m != "" {
		return m
	}
	return w.emailRe.FindString(text)
}

func pluralUnit(unit string, count int) string {
	unit = strings.ToLower(strings.TrimSuffix(unit, "s"))
	if count == 1 {
		return unit
	}
	return unit + "s"
}
