package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency - валюта витрины.
const Currency = "NOK"

// FormatAmount форматирует сумму: два знака после точки, тысячи разделены пробелом.
// 1234.5 -> "1 234.50"
func FormatAmount(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	return sign + b.String() + "." + fracPart
}

// FormatPrice форматирует сумму с валютой: "250.00 NOK".
func FormatPrice(d decimal.Decimal) string {
	return FormatAmount(d) + " " + Currency
}
