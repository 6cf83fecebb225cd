package service

import (
	"regexp"
	"strings"
)

// The raw scan gives up on structure and pulls whatever readable fragments
// the byte stream carries: glyph-show operator arguments, text blocks,
// amount-shaped and label-shaped substrings, and long alphanumeric runs.
// Lossy on purpose; the downstream extractors only need the fragments.
var (
	parenTextRe  = regexp.MustCompile(`\(([^()]{2,200})\)`)
	textBlockRe  = regexp.MustCompile(`(?s)BT\s*(.{0,500}?)\s*ET`)
	amountLikeRe = regexp.MustCompile(`(?:₹|Rs\.?|INR|\$|€)\s*\d[\d,]*(?:\.\d{1,2})?`)
	labelLikeRe  = regexp.MustCompile(`(?i)(?:total|amount|invoice|order|bill|paid|date|gst|vendor|warranty|refund)[^\n]{0,60}`)
	alnumRunRe   = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9 .,:/\-]{9,}`)
)

const (
	scanMinChars   = 100
	rawScanMaxOut  = 2000
	scanMaxMatches = 300
)

// scanPDFText is the last-resort text pass over raw PDF bytes. It never
// fails: a buffer with nothing readable in it yields "".
func scanPDFText(data []byte) string {
	raw := string(data)

	var fragments []string
	seen := make(map[string]bool)

	add := func(fragment string) {
		fragment = strings.TrimSpace(fragment)
		if len(fragment) < 2 || seen[fragment] {
			return
		}
		seen[fragment] = true
		fragments = append(fragments, fragment)
	}

	for _, m := range textBlockRe.FindAllStringSubmatch(raw, scanMaxMatches) {
		for _, inner := range parenTextRe.FindAllStringSubmatch(m[1], -1) {
			add(unescapePDFString(inner[1]))
		}
	}
	for _, m := range parenTextRe.FindAllStringSubmatch(raw, scanMaxMatches) {
		add(unescapePDFString(m[1]))
	}
	for _, m := range amountLikeRe.FindAllString(raw, scanMaxMatches) {
		add(m)
	}
	for _, m := range labelLikeRe.FindAllString(raw, scanMaxMatches) {
		add(m)
	}
	for _, m := range alnumRunRe.FindAllString(raw, scanMaxMatches) {
		add(m)
	}

	text := strings.Join(fragments, "\n")
	if len(text) >= scanMinChars {
		return text
	}

	// Structured patterns found almost nothing; fall back to every printable
	// run in the buffer, bounded so a binary-heavy file cannot flood us.
	return printableScan(data, rawScanMaxOut)
}

// printableScan collects runs of printable ASCII from the buffer, up to
// maxOut output characters.
func printableScan(data []byte, maxOut int) string {
	var out strings.Builder
	var run []byte

	flush := func() {
		if len(run) >= 4 {
			if out.Len() > 0 {
				out.WriteByte(' ')
			}
			out.Write(run)
		}
		run = run[:0]
	}

	for _, b := range data {
		if out.Len() >= maxOut {
			break
		}
		if b >= 0x20 && b <= 0x7E {
			run = append(run, b)
			continue
		}
		flush()
	}
	flush()

	text := out.String()
	if len(text) > maxOut {
		text = text[:maxOut]
	}
	return text
}

// unescapePDFString undoes the escapes PDF literal strings use.
func unescapePDFString(s string) string {
	replacer := strings.NewReplacer(
		`\n`, "\n", `\r`, " ", `\t`, " ",
		`\(`, "(", `\)`, ")", `\\`, `\`,
	)
	return replacer.Replace(s)
}
