package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DateLayout = "2006-01-02"

	secondsPerDay = 24 * 60 * 60
)

// DateOf drops the time of day, keeping the calendar date t shows in its own
// location, and returns it as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Nights is the number of whole calendar days between checkIn and checkOut.
// Counted on Unix seconds since time.Duration saturates after ~292 years.
func Nights(checkIn, checkOut time.Time) int {
	return int((DateOf(checkOut).Unix() - DateOf(checkIn).Unix()) / secondsPerDay)
}

// RangesOverlap applies half-open semantics: [a, b) and [c, d) overlap iff
// a < d and c < b. Touching ranges (b == c) do not overlap.
func RangesOverlap(a, b, c, d time.Time) bool {
	return DateOf(a).Before(DateOf(d)) && DateOf(c).Before(DateOf(b))
}

func TotalPrice(nightly decimal.Decimal, nights int) decimal.Decimal {
	return nightly.Mul(decimal.NewFromInt(int64(nights)))
}
