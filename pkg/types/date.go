// Package types provides the small value types shared by the citation engine
// and its collaborators.
package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date represents a calendar date without time component.
// Implements comparison via time.Time.
type Date struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31
}

// ParseDate parses an ISO calendar date of the form YYYY-MM-DD.
// Surrounding whitespace is ignored. The result is always a real calendar
// date: "2023-02-30" is rejected rather than normalized into March.
func ParseDate(raw string) (Date, error) {
	trimmed := strings.TrimSpace(raw)
	parts := strings.Split(trimmed, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}

	var fields [3]int
	for i, part := range parts {
		if strings.TrimLeft(part, "0123456789") != "" {
			return Date{}, fmt.Errorf("invalid date %q: %q is not a number", raw, part)
		}
		value, err := strconv.Atoi(part)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q: %w", raw, err)
		}
		fields[i] = value
	}

	date := Date{Year: fields[0], Month: fields[1], Day: fields[2]}
	if !date.Valid() {
		return Date{}, fmt.Errorf("invalid date %q: no such calendar day", raw)
	}
	return date, nil
}

// Valid reports whether d names an existing calendar day. time.Date
// normalizes out-of-range values ("February 30" becomes March 2), so a
// date is valid exactly when it survives the round trip unchanged.
func (d Date) Valid() bool {
	return FromTime(d.ToTime()).Equal(d)
}

// ToTime converts a Date to a time.Time at midnight UTC.
func (d Date) ToTime() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// FromTime creates a Date from a time.Time.
func FromTime(t time.Time) Date {
	return Date{
		Year:  t.Year(),
		Month: int(t.Month()),
		Day:   t.Day(),
	}
}

// Equal returns true if d equals other.
func (d Date) Equal(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month && d.Day == other.Day
}

// String returns the zero-padded ISO form, e.g. "2023-03-05".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
