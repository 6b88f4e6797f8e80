package utils

import (
	"fmt"
	"regexp"
	"time"
)

const dateLayout = "2006-01-02"

var (
	nationalIDPattern = regexp.MustCompile(`^\d{8}$`)
	phonePattern      = regexp.MustCompile(`^\+51\d{9}$`)
)

// ValidNationalID reports whether s is a Peruvian DNI: exactly 8 digits.
func ValidNationalID(s string) bool {
	return nationalIDPattern.MatchString(s)
}

// ValidPhone reports whether s is a WhatsApp-capable number in the
// +51XXXXXXXXX form the shop uses.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ParseDate parses a yyyy-mm-dd string into a calendar date. Unlike a
// permissive split-and-atoi, time.Parse rejects out-of-range components
// such as "2024-13-40".
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", s)
	}
	return d, nil
}

// ValidDateOrder reports whether due does not precede pickup. Equal
// dates are allowed (same-day rentals exist for single-event costumes).
func ValidDateOrder(pickup, due time.Time) bool {
	return !due.Before(pickup)
}

// FormatDate renders a date back into the wire format.
func FormatDate(d time.Time) string {
	return d.Format(dateLayout)
}
