package utils

import (
	"regexp"
	"strings"
)

// Identifiers carries the document reference numbers found in a text.
type Identifiers struct {
	InvoiceNumber string
	OrderNumber   string
}

// IdentifierExtractor pulls invoice and order numbers out of free text.
type IdentifierExtractor struct {
	invoiceRes []*regexp.Regexp
	orderRes   []*regexp.Regexp
	fallbackRe *regexp.Regexp
	hasDigit   *regexp.Regexp
	allDigits  *regexp.Regexp
}

const idToken = `([A-Za-z0-9][A-Za-z0-9\-/_]{3,29})`

// NewIdentifierExtractor compiles the labeled patterns, most specific first.
func NewIdentifierExtractor() *IdentifierExtractor {
	invoiceLabels := []string{
		`invoice\s*(?:number|num|no\.?|#|id)\s*[:\-#]?\s*`,
		`inv\s*(?:no\.?|#)\s*[:\-]?\s*`,
		`bill\s*(?:number|no\.?|#)\s*[:\-]?\s*`,
		`receipt\s*(?:number|no\.?|#)\s*[:\-]?\s*`,
		`document\s*(?:number|no\.?)\s*[:\-]?\s*`,
		`invoice\s*[:\-#]\s*`,
	}
	orderLabels := []string{
		`order\s*(?:number|num|no\.?|#|id)\s*[:\-#]?\s*`,
		`transaction\s*(?:id|number|no\.?)\s*[:\-]?\s*`,
		`txn\s*(?:id|no\.?)\s*[:\-]?\s*`,
		`reference\s*(?:number|no\.?|id)\s*[:\-]?\s*`,
		`ref\s*(?:no\.?|#)\s*[:\-]?\s*`,
		`booking\s*(?:id|number|no\.?)\s*[:\-]?\s*`,
		`payment\s*id\s*[:\-]?\s*`,
		`pnr\s*(?:no\.?)?\s*[:\-]?\s*`,
		`order\s*[:\-#]\s*`,
	}

	compile := func(labels []string) []*regexp.Regexp {
		res := make([]*regexp.Regexp, len(labels))
		for i, label := range labels {
			res[i] = regexp.MustCompile(`(?i)` + label + idToken)
		}
		return res
	}

	return &IdentifierExtractor{
		invoiceRes: compile(invoiceLabels),
		orderRes:   compile(orderLabels),
		fallbackRe: regexp.MustCompile(`\b([A-Z0-9][A-Z0-9\-]{7,})\b`),
		hasDigit:   regexp.MustCompile(`\d`),
		allDigits:  regexp.MustCompile(`^\d+$`),
	}
}

// Extract scans text for invoice and order numbers. When no labeled match is
// found at all, a standalone reference-looking token fills the invoice slot.
func (e *IdentifierExtractor) Extract(text string) Identifiers {
	ids := Identifiers{
		InvoiceNumber: e.firstToken(e.invoiceRes, text),
		OrderNumber:   e.firstToken(e.orderRes, text),
	}

	if ids.InvoiceNumber == "" && ids.OrderNumber == "" {
		for _, m := range e.fallbackRe.FindAllStringSubmatch(text, -1) {
			token := m[1]
			// Bare digit runs are phone numbers and amounts, not references.
			if e.allDigits.MatchString(token) {
				continue
			}
			if e.hasDigit.MatchString(token) {
				ids.InvoiceNumber = token
				break
			}
		}
	}

	return ids
}

// firstToken returns the first captured token that looks like a real
// reference, walking patterns in order so specific labels win.
func (e *IdentifierExtractor) firstToken(res []*regexp.Regexp, text string) string {
	for _, re := range res {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			token := strings.TrimRight(m[1], "-/_")
			if len(token) < 4 {
				continue
			}
			if !e.hasDigit.MatchString(token) {
				continue
			}
			return token
		}
	}
	return ""
}
