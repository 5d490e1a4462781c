// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"strings"
)

// FormatPrice formats a price with two decimals and thousands separators.
func FormatPrice(price float64) string {
	negative := price < 0
	if negative {
		price = -price
	}

	str := fmt.Sprintf("%.2f", price)
	parts := strings.Split(str, ".")

	result := groupThousands(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// FormatPercent formats a fraction-of-hundred value as a percent string.
func FormatPercent(value float64) string {
	return fmt.Sprintf("%+.2f%%", value)
}

// FormatVolume abbreviates large volumes (12.3K, 4.5M, 1.2B).
func FormatVolume(volume int64) string {
	v := float64(volume)
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	default:
		return fmt.Sprintf("%d", volume)
	}
}

func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
