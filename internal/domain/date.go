package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of a calendar date.
const DateLayout = "2006-01-02"

// CalendarDate is a day without time-of-day or zone. Two entries recorded on the
// same calendar day always map to the same CalendarDate regardless of the offset
// their timestamps were sent with.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t as seen in t's own location.
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// NewCalendarDate validates and builds a calendar date.
func NewCalendarDate(year int, month time.Month, day int) (CalendarDate, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return CalendarDate{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return CalendarDate{Year: year, Month: month, Day: day}, nil
}

// MustDate is NewCalendarDate for literals.
func MustDate(year int, month time.Month, day int) CalendarDate {
	d, err := NewCalendarDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseCalendarDate accepts "2006-01-02" or an RFC3339 timestamp. For timestamps
// the time-of-day is dropped in the timestamp's own offset.
func ParseCalendarDate(s string) (CalendarDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CalendarDate{}, ErrDateRequired
	}

	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOf(t), nil
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return DateOf(t), nil
}

// IsZero reports whether the date is unset.
func (d CalendarDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time returns midnight UTC of the date. Storage and queries use this instant.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days later (or earlier when n is negative).
func (d CalendarDate) AddDays(n int) CalendarDate {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d CalendarDate) Before(other CalendarDate) bool {
	return d.Time().Before(other.Time())
}

func (d CalendarDate) After(other CalendarDate) bool {
	return d.Time().After(other.Time())
}

func (d CalendarDate) Equal(other CalendarDate) bool {
	return d == other
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON encodes the date as "2006-01-02".
func (d CalendarDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts the same inputs as ParseCalendarDate.
func (d *CalendarDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, string(data))
	}

	parsed, err := ParseCalendarDate(s)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// Period is an inclusive range of calendar dates.
type Period struct {
	Start CalendarDate
	End   CalendarDate
}

// NewPeriod validates that both bounds are set and ordered.
func NewPeriod(start, end CalendarDate) (Period, error) {
	if start.IsZero() || end.IsZero() {
		return Period{}, ErrDateRequired
	}
	if end.Before(start) {
		return Period{}, fmt.Errorf("%w: %s > %s", ErrInvalidPeriod, start, end)
	}
	return Period{Start: start, End: end}, nil
}

// Contains reports whether d falls inside the period.
func (p Period) Contains(d CalendarDate) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

func (p Period) String() string {
	return p.Start.String() + ".." + p.End.String()
}
