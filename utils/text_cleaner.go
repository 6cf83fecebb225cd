package utils

import (
	stdhtml "html"
	"regexp"
	"strings"
)

var (
	hexEscapeRe  = regexp.MustCompile(`\\x[0-9a-fA-F]{2}`)
	octalRe      = regexp.MustCompile(`\\[0-7]{1,3}`)
	pdfMarkerRe  = regexp.MustCompile(`\b(?:obj|endobj|stream|endstream|xref|trailer|startxref)\b`)
	spaceRunRe   = regexp.MustCompile(`[ \t]+`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	scriptRe     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	garbledRunRe = regexp.MustCompile(`[^\x00-\x7F]{5,}`)
)

// CleanText strips escape-sequence noise and PDF structure markers out of
// extracted text. Newlines survive so line-based heuristics keep working.
func CleanText(text string) string {
	text = hexEscapeRe.ReplaceAllString(text, " ")
	text = octalRe.ReplaceAllString(text, " ")
	text = pdfMarkerRe.ReplaceAllString(text, " ")

	text = strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r >= 0x20 && r <= 0x7E:
			return r
		case r == '₹' || r == '€' || r == '£':
			return r
		default:
			return ' '
		}
	}, text)

	text = spaceRunRe.ReplaceAllString(text, " ")
	text = blankRunRe.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// IsReadableText reports whether extracted text looks like prose rather than
// compressed-stream garbage. At least 70% of the non-space runes must be
// printable and no long non-ASCII run may appear.
func IsReadableText(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 10 {
		return false
	}
	if garbledRunRe.MatchString(trimmed) {
		return false
	}

	printable := 0
	total := 0
	for _, r := range trimmed {
		if r == ' ' || r == '\n' || r == '\t' || r == '\r' {
			continue
		}
		total++
		if (r >= 0x20 && r <= 0x7E) || r == '₹' || r == '€' || r == '£' {
			printable++
		}
	}
	if total == 0 {
		return false
	}
	return float64(printable)/float64(total) >= 0.7
}

// StripHTML flattens an HTML email body to plain text.
func StripHTML(body string) string {
	body = scriptRe.ReplaceAllString(body, " ")
	body = styleRe.ReplaceAllString(body, " ")
	body = htmlTagRe.ReplaceAllString(body, " ")
	body = stdhtml.UnescapeString(body)
	return strings.Join(strings.Fields(body), " ")
}
