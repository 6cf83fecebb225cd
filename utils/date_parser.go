package utils

import (
	"regexp"
	"strings"
	"time"
)

// DateExtractor finds purchase and invoice dates in document text and
// normalizes them to ISO form.
type DateExtractor struct {
	labeledRes []*regexp.Regexp
	bareRes    []*regexp.Regexp
}

// Day-first layouts come before month-first. Invoices here are
// overwhelmingly Indian, so 04/05/2024 reads as 4 May.
var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2-1-06",
	"2006-1-2",
	"2006/1/2",
	"2 January 2006",
	"2 Jan 2006",
	"2 January, 2006",
	"2 Jan, 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822,
}

// NewDateExtractor compiles the date patterns.
func NewDateExtractor() *DateExtractor {
	month := `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*`
	numeric := `\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}`
	iso := `\d{4}[/\-]\d{1,2}[/\-]\d{1,2}`
	dayMonth := `\d{1,2}\s+` + month + `,?\s+\d{2,4}`
	monthDay := month + `\s+\d{1,2},?\s+\d{2,4}`
	anyDate := `(` + numeric + `|` + iso + `|` + dayMonth + `|` + monthDay + `)`

	labels := []string{
		`(?i)invoice\s+date[:\s]*`,
		`(?i)order\s+date[:\s]*`,
		`(?i)purchase\s+date[:\s]*`,
		`(?i)payment\s+date[:\s]*`,
		`(?i)dated?[:\s]+`,
	}
	labeledRes := make([]*regexp.Regexp, len(labels))
	for i, label := range labels {
		labeledRes[i] = regexp.MustCompile(label + anyDate)
	}

	bareRes := []*regexp.Regexp{
		regexp.MustCompile(`(?i)(` + iso + `)`),
		regexp.MustCompile(`(?i)(` + numeric + `)`),
		regexp.MustCompile(`(?i)(` + dayMonth + `)`),
		regexp.MustCompile(`(?i)(` + monthDay + `)`),
	}

	return &DateExtractor{labeledRes: labeledRes, bareRes: bareRes}
}

// Extract returns the first parseable date in the text as YYYY-MM-DD, or ""
// when nothing parses. Labeled dates win over bare ones.
func (d *DateExtractor) Extract(text string) string {
	for _, re := range d.labeledRes {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			if normalized, ok := d.Normalize(m[1]); ok {
				return normalized
			}
		}
	}
	for _, re := range d.bareRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if normalized, ok := d.Normalize(m[1]); ok {
				return normalized
			}
		}
	}
	return ""
}

// Normalize parses a raw date string against the known layouts and reports
// whether any of them matched.
func (d *DateExtractor) Normalize(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	// Month names parse case-sensitively, so retry title-cased.
	candidates := []string{raw, strings.Title(strings.ToLower(raw))}
	for _, candidate := range candidates {
		for _, layout := range dateLayouts {
			t, err := time.Parse(layout, candidate)
			if err != nil {
				continue
			}
			// Two-digit years before the epoch are misreads, not 19xx invoices.
			if t.Year() < 1990 || t.Year() > 2100 {
				continue
			}
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
