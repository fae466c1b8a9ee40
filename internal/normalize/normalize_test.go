package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"plain number", "25.00", 25.00},
		{"currency prefix", "SAR 25.00", 25.00},
		{"currency suffix", "49.95 SAR", 49.95},
		{"arabic riyal suffix", "٢٥٫٥٠ ر.س", 25.50},
		{"arabic riyal word", "١٢ ريال", 12},
		{"thousands separator", "1,299.00", 1299.00},
		{"arabic thousands separator", "١٬٢٩٩", 1299},
		{"integer only", "30", 30},
		{"embedded text", "Now only 17.25 each", 17.25},
		{"no digits", "free sample", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseAmount(tt.raw), 0.001)
		})
	}
}

func TestDiscount(t *testing.T) {
	assert.Equal(t, 50, Discount(60.00, 30.00))
	assert.Equal(t, 50, Discount(50.00, 25.00))
	assert.Equal(t, 33, Discount(30.00, 20.00))
	assert.Equal(t, 0, Discount(0, 10.00))
	assert.Equal(t, 0, Discount(10.00, 10.00))
	assert.Equal(t, 0, Discount(10.00, 20.00))
	assert.Equal(t, 100, Discount(40.00, 0))
}

func TestOriginal(t *testing.T) {
	assert.InDelta(t, 50.00, Original(25.00, 50), 0.01)
	assert.InDelta(t, 100.00, Original(75.00, 25), 0.01)

	// undefined for discount >= 100 or missing inputs
	assert.Equal(t, 0.0, Original(25.00, 100))
	assert.Equal(t, 0.0, Original(25.00, 0))
	assert.Equal(t, 0.0, Original(0, 50))
}

// Original and Discount must agree within rounding tolerance when composed.
func TestDiscountOriginalRoundTrip(t *testing.T) {
	for discount := 1; discount < 100; discount++ {
		current := 37.50
		original := Original(current, discount)
		assert.InDelta(t, discount, Discount(original, current), 1,
			"round trip for %d%%", discount)
	}
}
