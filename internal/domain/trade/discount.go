package trade

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ResolveHeaderDiscount interprets a document-level discount expression
// against a subtotal. An expression containing '%' is a percentage of the
// subtotal ("10%" on 1000 yields 100); anything else is a literal amount
// ("50" yields exactly 50 regardless of subtotal). Empty or unparsable
// expressions resolve to zero.
func ResolveHeaderDiscount(expr string, subtotal decimal.Decimal) decimal.Decimal {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return decimal.Zero
	}

	if strings.Contains(expr, "%") {
		pct, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(expr, "%", "")))
		if err != nil {
			return decimal.Zero
		}
		return subtotal.Mul(pct).Div(decimal.NewFromInt(100))
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(expr, ",", "."))
	if err != nil {
		return decimal.Zero
	}
	return amount
}
