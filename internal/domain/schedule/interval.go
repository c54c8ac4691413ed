package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"booking-engine/internal/pkg/errs"
)

const MinutesPerDay = 24 * 60

// Interval is a half-open range [Start, End) in minutes since local midnight.
type Interval struct {
	Start int
	End   int
}

func NewInterval(start, end int) (Interval, error) {
	if start < 0 || end > MinutesPerDay {
		return Interval{}, errs.Mark(errs.Newf("interval %d-%d outside of day", start, end), errs.ErrValidation)
	}
	if start >= end {
		return Interval{}, errs.Mark(errs.Newf("interval start %s must be before end %s", FormatClock(start), FormatClock(end)), errs.ErrValidation)
	}
	return Interval{Start: start, End: end}, nil
}

func (i Interval) Duration() int {
	return i.End - i.Start
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

func (i Interval) Contains(o Interval) bool {
	return i.Start <= o.Start && o.End <= i.End
}

func (i Interval) String() string {
	return FormatClock(i.Start) + "-" + FormatClock(i.End)
}

// ParseClock accepts "HH:MM" with 00 <= HH <= 24; "24:00" is only meaningful as an interval end.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, errs.Mark(errs.Newf("invalid time %q, expected HH:MM", s), errs.ErrValidation)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, errs.Mark(errs.Newf("invalid hour in %q", s), errs.ErrValidation)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, errs.Mark(errs.Newf("invalid minute in %q", s), errs.ErrValidation)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, errs.Mark(errs.Newf("time %q out of range", s), errs.ErrValidation)
	}
	return h*60 + m, nil
}

func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// NormalizeIntervals sorts by start and rejects overlapping pairs. Touching intervals are allowed.
func NormalizeIntervals(in []Interval) ([]Interval, error) {
	out := make([]Interval, len(in))
	copy(out, in)
	sort.Slice(out, func(a, b int) bool { return out[a].Start < out[b].Start })
	for i := 1; i < len(out); i++ {
		if out[i-1].Overlaps(out[i]) {
			return nil, errs.Mark(errs.Newf("intervals %s and %s overlap", out[i-1], out[i]), errs.ErrValidation)
		}
	}
	return out, nil
}
