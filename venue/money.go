package venue

import (
	"math"
	"strconv"
	"strings"
)

// Money renders an amount with thousands separators and no decimals, the
// way limits and exposures read on a desk: 1,000,000.
func Money(v float64) string {
	s := strconv.FormatFloat(math.Abs(v), 'f', 0, 64)
	if n := len(s); n > 3 {
		var b strings.Builder
		b.Grow(n + n/3)
		head := n % 3
		if head > 0 {
			b.WriteString(s[:head])
		}
		for i := head; i < n; i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if v < 0 {
		return "-" + s
	}
	return s
}
