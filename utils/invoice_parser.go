package utils

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spendlens/purchase-parser/dto"
)

const maxProductLines = 20

// paymentMethodTable pairs the wire keyword with its display form. Slice
// order breaks ties deterministically.
var paymentMethodTable = []struct {
	match   string
	display string
}{
	{"cash on delivery", "Cash on Delivery"},
	{"credit card", "Credit Card"},
	{"debit card", "Debit Card"},
	{"net banking", "Net Banking"},
	{"netbanking", "Net Banking"},
	{"paypal", "PayPal"},
	{"wallet", "Wallet"},
	{"upi", "UPI"},
	{"cod", "Cash on Delivery"},
	{"emi", "EMI"},
}

// InvoiceParser pulls line items and charge breakdowns out of invoice text.
type InvoiceParser struct {
	amounts       *AmountExtractor
	ids           *IdentifierExtractor
	qtyProductRe  *regexp.Regexp
	nameProductRe *regexp.Regexp
	taxRe         *regexp.Regexp
	shippingRe    *regexp.Regexp
	discountRe    *regexp.Regexp
	poRe          *regexp.Regexp
	paymentRe     *regexp.Regexp
}

// NewInvoiceParser compiles the invoice breakdown patterns.
func NewInvoiceParser() *InvoiceParser {
	currency := `(?:₹|rs\.?|inr|\$|€)?\s*`
	money := `([\d,]+(?:\.\d{1,2})?)`
	name := `([A-Za-z][A-Za-z0-9 &\.\-]{2,60}?)`

	methods := make([]string, len(paymentMethodTable))
	for i, pm := range paymentMethodTable {
		methods[i] = pm.match
	}

	return &InvoiceParser{
		amounts: NewAmountExtractor(),
		ids:     NewIdentifierExtractor(),
		// "2 x Wireless Mouse ₹1,299.00"
		qtyProductRe: regexp.MustCompile(`(?i)(\d{1,3})\s*x\s*` + name + `\s*` + currency + money),
		// "Wireless Mouse Qty: 2 Price: 1299"
		nameProductRe: regexp.MustCompile(`(?i)` + name + `\s*(?:qty|quantity)[:\s]*(\d{1,3})\s*(?:price|rate|amount)?[:\s]*` + currency + money),
		taxRe:         regexp.MustCompile(`(?i)(?:gst|cgst|sgst|igst|tax|vat)[:\s]*` + currency + money),
		shippingRe:    regexp.MustCompile(`(?i)(?:shipping|delivery|courier)(?:\s+(?:charges?|fees?|cost))?[:\s]*` + currency + money),
		discountRe:    regexp.MustCompile(`(?i)(?:discount|savings|you\s+saved)[:\s]*-?\s*` + currency + money),
		poRe:          regexp.MustCompile(`(?i)p\.?o\.?\s*(?:number|no\.?)?[:\s]+([A-Z0-9][A-Z0-9\-]{2,20})`),
		paymentRe:     regexp.MustCompile(`(?i)\b(` + strings.Join(methods, "|") + `)\b`),
	}
}

// Parse extracts products, charges, payment method and references from
// invoice text. Fields the text does not carry stay zero.
func (p *InvoiceParser) Parse(text string) *dto.InvoiceDetails {
	details := &dto.InvoiceDetails{
		Products: p.extractProducts(text),
	}

	if total, ok := p.amounts.Extract(text); ok {
		details.TotalAmount = &total
	}
	if tax, ok := p.firstMoney(p.taxRe, text); ok {
		details.TaxAmount = &tax
	}
	if shipping, ok := p.firstMoney(p.shippingRe, text); ok {
		details.ShippingCost = &shipping
	}
	if discount, ok := p.firstMoney(p.discountRe, text); ok {
		details.Discount = &discount
	}

	if m := p.paymentRe.FindStringSubmatch(text); len(m) > 1 {
		details.PaymentMethod = paymentMethodDisplay(m[1])
	}
	if m := p.poRe.FindStringSubmatch(text); len(m) > 1 {
		details.PONumber = m[1]
	}
	details.OrderNumber = p.ids.Extract(text).OrderNumber

	return details
}

// extractProducts collects "qty x name price" rows, falling back to the
// labeled "name Qty: n Price: x" form when none match.
func (p *InvoiceParser) extractProducts(text string) []dto.ProductLine {
	var products []dto.ProductLine

	for _, m := range p.qtyProductRe.FindAllStringSubmatch(text, -1) {
		if line, ok := productLine(m[2], m[1], m[3]); ok {
			products = append(products, line)
		}
		if len(products) >= maxProductLines {
			return products
		}
	}
	if len(products) > 0 {
		return products
	}

	for _, m := range p.nameProductRe.FindAllStringSubmatch(text, -1) {
		if line, ok := productLine(m[1], m[2], m[3]); ok {
			products = append(products, line)
		}
		if len(products) >= maxProductLines {
			break
		}
	}
	return products
}

func (p *InvoiceParser) firstMoney(re *regexp.Regexp, text string) (float64, bool) {
	if m := re.FindStringSubmatch(text); len(m) > 1 {
		return parseMoney(m[1])
	}
	return 0, false
}

func productLine(name, qty, price string) (dto.ProductLine, bool) {
	quantity, err := strconv.Atoi(qty)
	if err != nil || quantity <= 0 {
		return dto.ProductLine{}, false
	}
	value, ok := parseMoney(price)
	if !ok {
		return dto.ProductLine{}, false
	}

	cleaned := strings.Trim(strings.TrimSpace(name), "-. ")
	if len(cleaned) < 3 {
		return dto.ProductLine{}, false
	}
	return dto.ProductLine{Name: cleaned, Quantity: quantity, Price: value}, true
}

// parseMoney parses a comma-grouped number. Non-positive and implausibly
// large values are rejected.
func parseMoney(raw string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil || value <= 0 || value > MaxPlausibleAmount {
		return 0, false
	}
	return value, true
}

func paymentMethodDisplay(match string) string {
	matchLower := strings.ToLower(match)
	for _, pm := range paymentMethodTable {
		if pm.match == matchLower {
			return pm.display
		}
	}
	return match
}
