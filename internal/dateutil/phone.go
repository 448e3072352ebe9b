package dateutil

import "strings"

// NormalizePhone strips every non-digit character from s. It is the matching
// key for customer lookup and suggestion prefixes, and is idempotent.
func NormalizePhone(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
