package dateutil

import (
	"math"
	"strconv"
)

// CurrencySuffix is the fixed currency sign appended to formatted amounts.
// Currency/locale abstraction is deliberately out of scope.
const CurrencySuffix = "₫"

// FormatMoney renders n with dot-grouped thousands and the fixed currency
// suffix. NaN and infinities format as zero.
func FormatMoney(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		n = 0
	}
	v := int64(math.Round(n))
	neg := v < 0
	if neg {
		v = -v
	}

	s := strconv.FormatInt(v, 10)
	var b []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			b = append(b, '.')
		}
		b = append(b, c)
	}
	out := string(b) + CurrencySuffix
	if neg {
		return "-" + out
	}
	return out
}
