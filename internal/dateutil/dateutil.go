// Package dateutil holds the small pure helpers the CRM core is built on:
// dd-mm-yyyy parsing/formatting, calendar-granularity comparison, phone
// normalization and money formatting.
package dateutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is the sentinel for unparseable date text. A failed parse
// must never coerce into an unrelated valid date.
type ErrInvalidDate struct {
	Input string
}

func (e *ErrInvalidDate) Error() string {
	return fmt.Sprintf("invalid date: %q", e.Input)
}

// ParseDMY parses a dd-mm-yyyy string into a local-time date.
// Ill-formed or impossible dates (e.g. "31-02-2024") return *ErrInvalidDate.
func ParseDMY(s string) (time.Time, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, &ErrInvalidDate{Input: s}
	}

	dd, err1 := strconv.Atoi(parts[0])
	mm, err2 := strconv.Atoi(parts[1])
	yy, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, &ErrInvalidDate{Input: s}
	}
	if yy < 1 || mm < 1 || mm > 12 || dd < 1 || dd > 31 {
		return time.Time{}, &ErrInvalidDate{Input: s}
	}

	t := time.Date(yy, time.Month(mm), dd, 0, 0, 0, 0, time.Local)
	// time.Date normalizes overflow (31-02 becomes 02-03 or 03-03);
	// reject anything that did not survive the round trip.
	if t.Year() != yy || t.Month() != time.Month(mm) || t.Day() != dd {
		return time.Time{}, &ErrInvalidDate{Input: s}
	}
	return t, nil
}

// FormatDMY renders t as dd-mm-yyyy.
func FormatDMY(t time.Time) string {
	return fmt.Sprintf("%02d-%02d-%04d", t.Day(), int(t.Month()), t.Year())
}

// AnchorDay, AnchorMonth and AnchorYear render the committed picker value for
// each granularity. The format is dd-mm-yyyy in all three cases so downstream
// filtering can parse anchors uniformly.
func AnchorDay(t time.Time) string { return FormatDMY(t) }

func AnchorMonth(t time.Time) string {
	return fmt.Sprintf("01-%02d-%04d", int(t.Month()), t.Year())
}

func AnchorYear(t time.Time) string {
	return fmt.Sprintf("01-01-%04d", t.Year())
}

// SameDay reports whether a and b fall on the same calendar day in local time.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// SameMonth reports whether a and b fall in the same calendar month and year.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// SameYear reports whether a and b fall in the same calendar year.
func SameYear(a, b time.Time) bool {
	return a.Year() == b.Year()
}

var (
	isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dmyDateRe = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
)

// NormalizeDMY converts a legacy yyyy-mm-dd date string to dd-mm-yyyy.
// Strings already in dd-mm-yyyy form, and anything unrecognized, are
// returned unchanged.
func NormalizeDMY(s string) string {
	if isoDateRe.MatchString(s) {
		return s[8:10] + "-" + s[5:7] + "-" + s[0:4]
	}
	if dmyDateRe.MatchString(s) {
		return s
	}
	return s
}
