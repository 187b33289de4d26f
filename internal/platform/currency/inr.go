// Package currency formats rupee amounts for display.
package currency

import (
	"strconv"
	"strings"
)

// Symbol is the rupee sign prefixed to formatted amounts.
const Symbol = "₹"

// FormatINR renders n with Indian digit grouping: the last three digits form
// one group and every two digits before that form another (1,50,000).
// Amounts below one thousand are printed bare, without the symbol.
func FormatINR(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
	}
	digits := strconv.FormatUint(absUint(n), 10)
	if len(digits) <= 3 {
		return sign + digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	groups = append(groups, tail)

	return sign + Symbol + strings.Join(groups, ",")
}

func absUint(n int64) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}
