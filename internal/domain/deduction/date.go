package deduction

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day anchored at UTC midnight. The zero value is the
// absent date: anything that fails to parse becomes an invalid Date and is
// excluded from every date-based match.
type Date struct {
	t     time.Time
	valid bool
}

// ParseDate accepts "YYYY-MM-DD" and any string starting with it (timestamps
// such as "2025-11-03T00:00:00+07:00"). Only the literal calendar day is kept,
// so a timezone offset never moves the date into another month.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if len(s) < len(dateLayout) {
		return Date{}
	}
	t, err := time.Parse(dateLayout, s[:len(dateLayout)])
	if err != nil {
		return Date{}
	}
	return Date{t: t, valid: true}
}

// DateOf takes the calendar day of t in its own location.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), valid: true}
}

func (d Date) Valid() bool { return d.valid }

func (d Date) Time() time.Time { return d.t }

func (d Date) Year() int { return d.t.Year() }

func (d Date) Month() time.Month { return d.t.Month() }

// DaysSince returns the whole UTC days from start to d.
func (d Date) DaysSince(start Date) int {
	return int(d.t.Sub(start.t).Hours() / 24)
}

func (d Date) String() string {
	if !d.valid {
		return ""
	}
	return d.t.Format(dateLayout)
}

// ClockTime is a wall-clock time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" or "HH:MM:SS". Seconds are ignored.
func ParseClock(s string) (ClockTime, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return ClockTime{}, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return ClockTime{}, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return ClockTime{}, false
	}
	return ClockTime{Hour: h, Minute: m}, true
}

// After reports whether c is strictly later than other.
func (c ClockTime) After(other ClockTime) bool {
	if c.Hour != other.Hour {
		return c.Hour > other.Hour
	}
	return c.Minute > other.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Period is a payroll month (periode).
type Period struct {
	Year  int
	Month time.Month
}

// ParsePeriod parses "YYYY-MM".
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

func (p Period) IsZero() bool {
	return p.Year == 0 || p.Month < time.January || p.Month > time.December
}

// Contains reports whether d is a valid date inside the period.
func (p Period) Contains(d Date) bool {
	return d.Valid() && d.Year() == p.Year && d.Month() == p.Month
}

// FirstDay and LastDay bound the period, both inclusive.
func (p Period) FirstDay() Date {
	return NewDate(p.Year, p.Month, 1)
}

func (p Period) LastDay() Date {
	return NewDate(p.Year, p.Month+1, 0)
}

func (p Period) String() string {
	if p.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}
