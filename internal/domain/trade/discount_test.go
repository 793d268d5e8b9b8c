package trade

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestResolveHeaderDiscount(t *testing.T) {
	subtotal := decimal.RequireFromString("200.00")

	tests := []struct {
		name string
		expr string
		want string
	}{
		{"empty", "", "0"},
		{"percent", "10%", "20"},
		{"percent with space", " 10 % ", "20"},
		{"fractional percent", "2.5%", "5"},
		{"literal", "50", "50"},
		{"literal with decimals", "25.50", "25.5"},
		{"comma decimal separator", "25,50", "25.5"},
		{"invalid", "abc", "0"},
		{"invalid percent", "x%", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveHeaderDiscount(tt.expr, subtotal)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"expr %q: got %s, want %s", tt.expr, got, tt.want)
		})
	}
}

func TestResolveHeaderDiscountZeroSubtotal(t *testing.T) {
	got := ResolveHeaderDiscount("10%", decimal.Zero)
	assert.True(t, got.IsZero())
}
