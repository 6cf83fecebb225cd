package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCandidate(t *testing.T) {
	f := NewMailFilter(DefaultFilterConfig())

	assert.True(t, f.IsCandidate("Your invoice from Amazon", "billing@amazon.in"))
	assert.True(t, f.IsCandidate("Booking confirmed for Friday", "bookings@cinema.example"))
	assert.True(t, f.IsCandidate("Trip completed", "noreply@uber.com"))
	assert.True(t, f.IsCandidate("Auto-debit of ₹449 successful", "mandates@upibank.example"))

	assert.False(t, f.IsCandidate("Weekly team sync", "boss@corp.example"))
	assert.False(t, f.IsCandidate("Rahul mentioned you in a comment", "notify@social.example"))
}

func TestDenyListWinsOverAllowSignals(t *testing.T) {
	f := NewMailFilter(DefaultFilterConfig())

	// Subject carries both "invoice" and a deny term; deny is checked first.
	assert.False(t, f.IsCandidate("Unsubscribe from our Invoice newsletter", "billing@amazon.in"))
	assert.False(t, f.IsCandidate("Flash sale: order now and save", "deals@flipkart.com"))
}

func TestIsCreditCardStatement(t *testing.T) {
	f := NewMailFilter(DefaultFilterConfig())

	assert.True(t, f.IsCreditCardStatement("Your Credit Card Statement for August", "statements@randombank.example"))
	assert.True(t, f.IsCreditCardStatement("Transaction alert", "alerts@hdfcbank.com"))
	assert.False(t, f.IsCreditCardStatement("Your order has shipped", "orders@amazon.in"))
}

func TestIsPromotional(t *testing.T) {
	f := NewMailFilter(DefaultFilterConfig())

	// Known transactional vendors stay non-promotional unless the subject
	// says otherwise.
	assert.False(t, f.IsPromotional("Your order is on the way", "noreply@swiggy.in", "don't miss out on our new app"))
	assert.True(t, f.IsPromotional("Weekend offers you will love", "noreply@swiggy.in", ""))

	// Forwarded purchase mail is rescued even when the body smells promo.
	assert.False(t, f.IsPromotional("Fwd: Water charges invoice", "friend@gmail.com", "unsubscribe from this list"))

	assert.True(t, f.IsPromotional("Last chance to grab the deal", "noreply@shop.example", ""))
	assert.True(t, f.IsPromotional("Hello", "updates@shop.example", "use this discount code before the flash sale ends"))
	assert.False(t, f.IsPromotional("Payment received", "accounts@utility.example", "thank you for your payment"))
}
