package schedule

import (
	"time"

	"booking-engine/internal/pkg/errs"
)

const DateLayout = "2006-01-02"

// Date is a calendar date with no zone attached.
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errs.Mark(errs.Wrapf(err, "invalid date %q, expected YYYY-MM-DD", s), errs.ErrValidation)
	}
	return DateOf(t), nil
}

// DateOf takes the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

func (d Date) Weekday() time.Weekday {
	return d.midnight(time.UTC).Weekday()
}

func (d Date) String() string {
	return d.midnight(time.UTC).Format(DateLayout)
}

// At returns the instant of minute on this date in loc.
func (d Date) At(minute int, loc *time.Location) time.Time {
	return d.midnight(loc).Add(time.Duration(minute) * time.Minute)
}

// Time is midnight UTC, the representation stored in DATE columns.
func (d Date) Time() time.Time {
	return d.midnight(time.UTC)
}

func (d Date) Before(o Date) bool {
	return d.Time().Before(o.Time())
}

func (d Date) midnight(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// MinuteOfDay is the number of minutes since midnight of t in t's location.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
