package report

import "strconv"

// Ordinal renders n with its English ordinal suffix: 1st, 2nd, 3rd, 4th.
// The 10..20 band is always "th" (11th, 12th, 13th, 111th); outside it the
// suffix follows the last digit (21st, 101st).
func Ordinal(n int) string {
	if band := n % 100; band >= 10 && band <= 20 {
		return strconv.Itoa(n) + "th"
	}
	switch n % 10 {
	case 1:
		return strconv.Itoa(n) + "st"
	case 2:
		return strconv.Itoa(n) + "nd"
	case 3:
		return strconv.Itoa(n) + "rd"
	default:
		return strconv.Itoa(n) + "th"
	}
}
