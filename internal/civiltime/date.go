package civiltime

import (
	"fmt"
	"regexp"
	"time"
)

// Date is a JST calendar date. The zero value is not a valid date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

var (
	isoDate     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	compactDate = regexp.MustCompile(`^\d{8}$`)
)

// NewDate validates a calendar date. Years are limited to four digits so the
// compact form always has a fixed width.
func NewDate(year int, month time.Month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if !d.Valid() {
		return Date{}, &DateParseError{
			Input:  fmt.Sprintf("%04d-%02d-%02d", year, int(month), day),
			Reason: "not a calendar date",
		}
	}
	return d, nil
}

// DateOf returns the JST calendar date containing the instant t.
func DateOf(t time.Time) Date {
	y, m, d := t.In(Zone).Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	if !isoDate.MatchString(s) {
		return Date{}, &DateParseError{Input: s, Reason: "expected YYYY-MM-DD"}
	}
	return parseDateLayout(s, "2006-01-02")
}

// ParseCompactDate parses "YYYYMMDD", the form used inside identifiers.
func ParseCompactDate(s string) (Date, error) {
	if !compactDate.MatchString(s) {
		return Date{}, &DateParseError{Input: s, Reason: "expected YYYYMMDD"}
	}
	return parseDateLayout(s, "20060102")
}

func parseDateLayout(s, layout string) (Date, error) {
	t, err := time.ParseInLocation(layout, s, Zone)
	if err != nil {
		return Date{}, &DateParseError{Input: s, Reason: "not a calendar date", Err: err}
	}
	d := DateOf(t)
	if !d.Valid() {
		return Date{}, &DateParseError{Input: s, Reason: "year out of range"}
	}
	return d, nil
}

// Valid reports whether d names a real day between years 1 and 9999.
func (d Date) Valid() bool {
	if d.Year < 1 || d.Year > 9999 {
		return false
	}
	if d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}
	return DateOf(d.Start()) == d
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Start returns the instant of JST midnight at the beginning of d.
func (d Date) Start() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, Zone)
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Start().AddDate(0, 0, n))
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }

// InRange reports whether from <= d <= to.
func (d Date) InRange(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}

// String returns "YYYY-MM-DD".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Compact returns "YYYYMMDD".
func (d Date) Compact() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day)
}

// Ordinal returns YYYYMMDD as an integer, suitable as a sort key.
func (d Date) Ordinal() int {
	return d.Year*10000 + int(d.Month)*100 + d.Day
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MonthOf returns the first and last dates of the month containing d.
func MonthOf(d Date) (Date, Date) {
	first := Date{Year: d.Year, Month: d.Month, Day: 1}
	last := DateOf(first.Start().AddDate(0, 1, -1))
	return first, last
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
