package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDate(t *testing.T) {
	d := NewDateExtractor()

	assert.Equal(t, "2024-03-15", d.Extract("Invoice Date: 15/03/2024\nTotal: 500"))
	assert.Equal(t, "2024-03-05", d.Extract("Dated: 5 March 2024"))
	assert.Equal(t, "2024-03-15", d.Extract("Generated on 2024-03-15 10:22"))
	assert.Equal(t, "", d.Extract("no dates in here"))
}

func TestNormalizeDateIsDayFirst(t *testing.T) {
	d := NewDateExtractor()

	// 04/05/2024 is the 4th of May, not April 5th.
	got, ok := d.Normalize("04/05/2024")
	assert.True(t, ok)
	assert.Equal(t, "2024-05-04", got)

	got, ok = d.Normalize("Thu, 21 Aug 2025 10:30:00 +0530")
	assert.True(t, ok)
	assert.Equal(t, "2025-08-21", got)

	_, ok = d.Normalize("not a date")
	assert.False(t, ok)
}
