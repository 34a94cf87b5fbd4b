package utils

import (
	"fmt"
	"strings"
)

// FormatCurrency formats an amount with thousands separators and two
// decimals, e.g. 15000.5 -> "15,000.50". Rounding to two decimals happens
// here and only here; callers keep full precision until display.
func FormatCurrency(amount float64) string {
	formatted := fmt.Sprintf("%.2f", amount)

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	negative := strings.HasPrefix(integerPart, "-")
	if negative {
		integerPart = integerPart[1:]
	}

	var result []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		result = append([]string{integerPart[start:i]}, result...)
	}

	out := strings.Join(result, ",") + "." + decimalPart
	if negative {
		out = "-" + out
	}
	return out
}

// FormatPeso prefixes the currency symbol, e.g. "₱15,000.50".
func FormatPeso(amount float64) string {
	return "₱" + FormatCurrency(amount)
}
