// Package schedule implements the timetable core of the exporter: timestamp
// normalization, the 30-minute slot table, and event placement on the
// day-by-day calendar grid.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar day with no time-of-day or zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DefaultDate is used when no date can be found in an input string.
var DefaultDate = Date{Year: 2025, Month: time.January, Day: 1}

// Default clock time when no time can be found in an input string.
const (
	DefaultHour   = 9
	DefaultMinute = 0
)

// Time returns the date as a midnight time.Time in UTC. Out-of-range
// components (a literal "2025-13-40" extracted from text) normalize the
// way time.Date does.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Compact formats the date as YYYYMMDD, the filename convention.
func (d Date) Compact() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day)
}

// Before reports whether d falls strictly before o.
func (d Date) Before(o Date) bool {
	return d.Time().Before(o.Time())
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// DateOf truncates a time.Time to its calendar day.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// NormalizedTime is a timezone-agnostic (date, hour, minute) triple derived
// from raw input text. It never carries zone information: offset markers in
// the input are discarded by the textual policy or collapsed into a fixed
// display shift by the shifted policy.
type NormalizedTime struct {
	Date   Date
	Hour   int
	Minute int
}

// Rounded snaps the minute to the nearest 30-minute slot boundary:
// <15 rounds down to :00, 15-44 to :30, >=45 up to :00 of the next hour.
// The hour wraps modulo 24 and the calendar date is never advanced by the
// wrap; 23:45 therefore rounds to 00:00 on the same date. This is a known
// boundary quirk kept for parity with how times are displayed.
func (n NormalizedTime) Rounded() NormalizedTime {
	h, m := roundToSlot(n.Hour, n.Minute)
	return NormalizedTime{Date: n.Date, Hour: h, Minute: m}
}

// Clock formats the time-of-day as HH:MM.
func (n NormalizedTime) Clock() string {
	return fmt.Sprintf("%02d:%02d", n.Hour, n.Minute)
}

// SortKey orders normalized times chronologically within string comparison.
func (n NormalizedTime) SortKey() string {
	return n.Date.String() + "T" + n.Clock()
}

func roundToSlot(hour, minute int) (int, int) {
	switch {
	case minute < 15:
		return hour, 0
	case minute < 45:
		return hour, 30
	default:
		return (hour + 1) % 24, 0
	}
}

// Normalizer converts a free-form date-time string into a NormalizedTime.
// Implementations always return a value: input that cannot be parsed maps
// to documented defaults, never to an error. One export uses exactly one
// policy; the two policies are incompatible and must not be mixed.
type Normalizer interface {
	Normalize(raw string) NormalizedTime
}

var (
	datePattern    = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	isoTimePattern = regexp.MustCompile(`T(\d{1,2}):(\d{2})`)
	anyTimePattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// TextualNormalizer is the pass-through policy: the date and clock
// substrings are lifted straight out of the text with no calendar parsing
// and no zone conversion, so displayed times match whatever the caller
// wrote. Used by the dashboard report variant.
type TextualNormalizer struct{}

// Normalize extracts a YYYY-MM-DD substring and an HH:MM substring from raw.
// Either falls back to its default independently of the other.
func (TextualNormalizer) Normalize(raw string) NormalizedTime {
	hour, minute := ExtractClock(raw)
	return NormalizedTime{Date: ExtractDate(raw), Hour: hour, Minute: minute}
}

// ExtractDate scans raw for the first YYYY-MM-DD substring and returns it
// literally, without validating the calendar. DefaultDate when absent.
func ExtractDate(raw string) Date {
	m := datePattern.FindStringSubmatch(raw)
	if m == nil {
		return DefaultDate
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return Date{Year: year, Month: time.Month(month), Day: day}
}

// ExtractClock scans raw for a time-of-day, in priority order:
// an HH:MM directly after a T separator, then the substring after T with
// any trailing zone marker or fractional seconds stripped, then any HH:MM
// anywhere in the string. Defaults to 09:00 when nothing matches.
func ExtractClock(raw string) (hour, minute int) {
	if m := isoTimePattern.FindStringSubmatch(raw); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
		return hour, minute
	}

	if _, after, ok := strings.Cut(raw, "T"); ok {
		part := after
		for _, sep := range []string{"Z", "+", "-", "."} {
			part, _, _ = strings.Cut(part, sep)
		}
		if m := anyTimePattern.FindStringSubmatch(part); m != nil {
			hour, _ = strconv.Atoi(m[1])
			minute, _ = strconv.Atoi(m[2])
			return hour, minute
		}
	}

	if m := anyTimePattern.FindStringSubmatch(raw); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
		return hour, minute
	}

	return DefaultHour, DefaultMinute
}

// displayShift is the fixed offset the shifted policy applies to every
// successfully parsed timestamp so exported times line up with the web
// calendar's display frame.
const displayShift = 8 * time.Hour

var shiftedLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ShiftedNormalizer is the strict policy: the whole timestamp is parsed
// with standard layouts and a fixed +8h display shift is applied to every
// parse that succeeds. Used by the calendar report variant. Now supplies
// the fallback instant for unparseable input; it defaults to time.Now.
type ShiftedNormalizer struct {
	Now func() time.Time
}

// trailingZonePattern matches a zone designator at the end of a timestamp:
// Z, +08:00, -05:00, +0800. The designator is dropped rather than converted;
// the shift applies to the wall clock the client sent.
var trailingZonePattern = regexp.MustCompile(`(?:[Zz]|[+-]\d{2}:?\d{2})$`)

// Normalize parses raw and applies the display shift. Unparseable input
// falls back to the current time, unshifted.
func (s ShiftedNormalizer) Normalize(raw string) NormalizedTime {
	clean := strings.TrimSpace(raw)
	clean = trailingZonePattern.ReplaceAllString(clean, "")

	for _, layout := range shiftedLayouts {
		t, err := time.Parse(layout, clean)
		if err != nil {
			continue
		}
		t = t.Add(displayShift)
		return NormalizedTime{Date: DateOf(t), Hour: t.Hour(), Minute: t.Minute()}
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	t := now()
	return NormalizedTime{Date: DateOf(t), Hour: t.Hour(), Minute: t.Minute()}
}
