// Package civiltime converts between Japan Standard Time wall-clock text and
// absolute instants.
//
// All conversions use a fixed +09:00 offset and never consult the host's
// local timezone. Japan observes no daylight saving, so the offset is
// constant for every date this service handles.
package civiltime

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Zone is Japan Standard Time (UTC+9).
var Zone = time.FixedZone("JST", 9*60*60)

// Layouts for the two external representations.
const (
	// StorageLayout is the canonical column format for persisted datetimes.
	StorageLayout = "2006-01-02 15:04:05"
	// ISOLayout renders the fixed offset as "+09:00" when formatting in Zone.
	ISOLayout = "2006-01-02T15:04:05-07:00"
)

// ErrDateParse matches every DateParseError via errors.Is.
var ErrDateParse = errors.New("invalid civil date/time")

// DateParseError reports text that could not be turned into an instant.
type DateParseError struct {
	Input  string
	Reason string
	Err    error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("invalid civil date/time %q: %s", e.Input, e.Reason)
}

// Is reports whether target is ErrDateParse.
func (e *DateParseError) Is(target error) bool {
	return target == ErrDateParse
}

// Unwrap returns the underlying time package error, if any.
func (e *DateParseError) Unwrap() error {
	return e.Err
}

var (
	// zonedSuffix matches a trailing Z or numeric ±hh:mm offset.
	zonedSuffix = regexp.MustCompile(`(Z|[+-]\d{2}:\d{2})$`)
	civilText   = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})(?:[ T](\d{2}):(\d{2})(?::(\d{2}))?)?$`)
	storageText = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)
)

// ParseAssumingCivil parses text as an instant.
//
// Text carrying its own zone (a trailing "Z" or "±hh:mm") is parsed as
// RFC 3339, with a space accepted in place of the "T". Anything else must be "YYYY-MM-DD" optionally followed
// by " HH:mm" or " HH:mm:ss" (a "T" separator is accepted too) and is read as
// a JST wall clock. Missing time parts are zero. Malformed input is a
// *DateParseError; nothing defaults to the zero time or to now.
func ParseAssumingCivil(text string) (time.Time, error) {
	if text == "" {
		return time.Time{}, &DateParseError{Input: text, Reason: "empty"}
	}

	if zonedSuffix.MatchString(text) {
		zoned := text
		if len(zoned) > 10 && zoned[10] == ' ' {
			zoned = zoned[:10] + "T" + zoned[11:]
		}
		t, err := time.Parse(time.RFC3339, zoned)
		if err != nil {
			return time.Time{}, &DateParseError{Input: text, Reason: "malformed zoned timestamp", Err: err}
		}
		return t, nil
	}

	m := civilText.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, &DateParseError{Input: text, Reason: "expected YYYY-MM-DD[ HH:mm[:ss]]"}
	}

	hour, minute, second := "00", "00", "00"
	if m[2] != "" {
		hour, minute = m[2], m[3]
	}
	if m[4] != "" {
		second = m[4]
	}

	return parseWallClock(text, m[1]+" "+hour+":"+minute+":"+second)
}

// ParseStorage is the strict inverse of FormatStorage. Only the exact
// "YYYY-MM-DD HH:mm:ss" form is accepted.
func ParseStorage(text string) (time.Time, error) {
	if !storageText.MatchString(text) {
		return time.Time{}, &DateParseError{Input: text, Reason: "expected YYYY-MM-DD HH:mm:ss"}
	}
	return parseWallClock(text, text)
}

// FormatStorage renders t as a JST "YYYY-MM-DD HH:mm:ss" string.
func FormatStorage(t time.Time) string {
	return t.In(Zone).Format(StorageLayout)
}

// FormatISO renders t as "YYYY-MM-DDTHH:mm:ss+09:00".
func FormatISO(t time.Time) string {
	return t.In(Zone).Format(ISOLayout)
}

// Normalize returns t in Zone at second precision, the precision every
// persisted representation carries.
func Normalize(t time.Time) time.Time {
	return t.In(Zone).Truncate(time.Second)
}

// parseWallClock reads a normalized storage-form string in Zone. The time
// package rejects out-of-range fields such as month 13 or 25:00.
func parseWallClock(input, normalized string) (time.Time, error) {
	t, err := time.ParseInLocation(StorageLayout, normalized, Zone)
	if err != nil {
		return time.Time{}, &DateParseError{Input: input, Reason: "field out of range", Err: err}
	}
	return t, nil
}
