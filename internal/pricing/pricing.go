package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Total is the full price of a unit: area in square meters times the price per square meter.
func Total(area, pricePerSqm decimal.Decimal) decimal.Decimal {
	return area.Mul(pricePerSqm)
}

// FormatAmount rounds to whole tenge and groups thousands with plain spaces,
// e.g. 660000000 becomes "660 000 000".
func FormatAmount(amount decimal.Decimal) string {
	digits := amount.Round(0).String()

	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
