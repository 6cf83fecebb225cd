package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxPlausibleAmount is the upper bound on extracted amounts. Matches above
// it are treated as non-amounts (order IDs, phone numbers, loyalty balances)
// and discarded.
const MaxPlausibleAmount = 1000000

const numberGroup = `(\d+(?:,\d{3})*(?:\.\d{1,2})?)`

// amountLabels are the contextual prefixes an amount may carry on invoices
// and purchase mail. Ordered for readability only; every pattern runs over
// the whole text and the maximum match wins.
var amountLabels = []string{
	`grand\s+total`, `sub\s*total`, `balance\s+due`, `total\s+amount`,
	`amount\s+paid`, `amount\s+payable`, `net\s+payable`,
	`total`, `amount`, `paid`, `price`, `cost`, `value`, `bill`,
	`invoice`, `order`, `payment`, `charges`, `fees`,
	`booking\s+charge`, `cinema`, `ticket`,
}

// AmountExtractor finds monetary amounts in free text using ordered regex
// families: direct currency symbols, contextual labels, and loose
// numeric-with-currency-word forms.
type AmountExtractor struct {
	patterns        []*regexp.Regexp
	subjectPatterns []*regexp.Regexp
	maxPlausible    float64
}

// NewAmountExtractor builds an extractor with the default pattern tables.
func NewAmountExtractor() *AmountExtractor {
	symbol := []string{
		`(?i)₹\s*` + numberGroup,
		`(?i)\brs\.?\s*` + numberGroup,
		`(?i)\binr\s*` + numberGroup,
		`(?i)\$\s*` + numberGroup,
		`(?i)\busd\s*` + numberGroup,
		`(?i)€\s*` + numberGroup,
		`(?i)\beur\s*` + numberGroup,
	}

	var labeled []string
	for _, label := range amountLabels {
		labeled = append(labeled, `(?i)`+label+`[:\s]*(?:₹|rs\.?|inr|\$|€)?\s*`+numberGroup)
	}

	loose := []string{
		`(?i)` + numberGroup + `\s*rupees?`,
		`(?i)` + numberGroup + `\s*₹`,
		`(?i)` + numberGroup + `\s*/-`,
		`(?i)` + numberGroup + `\s*inr`,
		`(?i)` + numberGroup + `\s*rs\b`,
		`(?i)` + numberGroup + `\s*only\b`,
		`(?i)payment\s+of\s+rs\.?\s*` + numberGroup,
		`(?i)charges\s+of\s+rs\.?\s*` + numberGroup,
		`(?i)fees\s+payment[:\s]*rs?\.?\s*` + numberGroup,
	}

	compile := func(exprs []string) []*regexp.Regexp {
		out := make([]*regexp.Regexp, 0, len(exprs))
		for _, expr := range exprs {
			out = append(out, regexp.MustCompile(expr))
		}
		return out
	}

	full := append(append(append([]string{}, symbol...), labeled...), loose...)

	return &AmountExtractor{
		patterns:        compile(full),
		subjectPatterns: compile(append(append([]string{}, symbol...), loose...)),
		maxPlausible:    MaxPlausibleAmount,
	}
}

// Extract runs every pattern over the text, collects all plausible matches,
// and returns the maximum. Invoices list line items, subtotal, tax, and
// total; the total is virtually always the largest number present, so the
// maximum is the best guess for the grand total. Returns ok=false when no
// plausible amount exists — callers must not conflate that with zero.
func (e *AmountExtractor) Extract(text string) (float64, bool) {
	return e.extract(text, e.patterns)
}

// ExtractFromSubject is the cheap subject-line variant using only the
// symbol and loose families.
func (e *AmountExtractor) ExtractFromSubject(subject string) (float64, bool) {
	return e.extract(subject, e.subjectPatterns)
}

func (e *AmountExtractor) extract(text string, patterns []*regexp.Regexp) (float64, bool) {
	var best float64
	found := false

	for _, re := range patterns {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			if len(match) < 2 {
				continue
			}
			raw := strings.ReplaceAll(match[1], ",", "")
			amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				continue
			}
			if amount <= 0 || amount > e.maxPlausible {
				continue
			}
			if !found || amount > best {
				best = amount
				found = true
			}
		}
	}

	return best, found
}
