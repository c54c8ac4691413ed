package schedule

import (
	"strconv"
	"time"

	"booking-engine/internal/pkg/errs"
)

// WeekdaySchedule holds the open intervals of a single weekday. Closed days carry no intervals.
type WeekdaySchedule struct {
	Weekday   time.Weekday
	IsOpen    bool
	Intervals []Interval
}

func Closed(day time.Weekday) WeekdaySchedule {
	return WeekdaySchedule{Weekday: day}
}

func NewWeekdaySchedule(day time.Weekday, isOpen bool, intervals []Interval) (WeekdaySchedule, error) {
	if day < time.Sunday || day > time.Saturday {
		return WeekdaySchedule{}, errs.Mark(errs.Newf("invalid weekday %d", day), errs.ErrValidation)
	}
	if !isOpen {
		return Closed(day), nil
	}
	if len(intervals) == 0 {
		return WeekdaySchedule{}, errs.Mark(errs.Newf("open weekday %d needs at least one interval", day), errs.ErrValidation)
	}
	normalized, err := NormalizeIntervals(intervals)
	if err != nil {
		return WeekdaySchedule{}, err
	}
	return WeekdaySchedule{Weekday: day, IsOpen: true, Intervals: normalized}, nil
}

// Fits reports whether slot lies entirely inside one of the open intervals.
func (w WeekdaySchedule) Fits(slot Interval) bool {
	if !w.IsOpen {
		return false
	}
	for _, iv := range w.Intervals {
		if iv.Contains(slot) {
			return true
		}
	}
	return false
}

// WeeklyHours is indexed by time.Weekday (0 = Sunday).
type WeeklyHours [7]WeekdaySchedule

func NewWeeklyHours() WeeklyHours {
	var w WeeklyHours
	for d := time.Sunday; d <= time.Saturday; d++ {
		w[d] = Closed(d)
	}
	return w
}

func (w WeeklyHours) Day(day time.Weekday) WeekdaySchedule {
	if day < time.Sunday || day > time.Saturday {
		return Closed(day)
	}
	return w[day]
}

func (w WeeklyHours) ForDate(d Date) WeekdaySchedule {
	return w.Day(d.Weekday())
}

// Configured is false when every weekday is closed.
func (w WeeklyHours) Configured() bool {
	for _, d := range w {
		if d.IsOpen {
			return true
		}
	}
	return false
}

// RawDay is the wire shape of one weekday: {"isOpen":true,"intervals":[{"start":"08:00","end":"12:00"}]}.
type RawDay struct {
	IsOpen    bool          `json:"isOpen"`
	Intervals []RawInterval `json:"intervals"`
}

type RawInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DecodeWeeklyHours builds hours from a map keyed "0".."6". Strict mode fails on any
// malformed entry; lenient mode treats garbled keys or days as closed, which is how
// stored documents are read back.
func DecodeWeeklyHours(raw map[string]RawDay, strict bool) (WeeklyHours, error) {
	hours := NewWeeklyHours()
	for key, rd := range raw {
		n, err := strconv.Atoi(key)
		if err != nil || n < 0 || n > 6 {
			if strict {
				return WeeklyHours{}, errs.Mark(errs.Newf("invalid weekday key %q", key), errs.ErrValidation)
			}
			continue
		}
		day, err := decodeDay(time.Weekday(n), rd)
		if err != nil {
			if strict {
				return WeeklyHours{}, err
			}
			continue
		}
		hours[n] = day
	}
	return hours, nil
}

func decodeDay(day time.Weekday, rd RawDay) (WeekdaySchedule, error) {
	if !rd.IsOpen {
		return Closed(day), nil
	}
	intervals := make([]Interval, 0, len(rd.Intervals))
	for _, ri := range rd.Intervals {
		if ri.Start == "" || ri.End == "" {
			return WeekdaySchedule{}, errs.Mark(errs.Newf("weekday %d: interval start and end are required", day), errs.ErrValidation)
		}
		start, err := ParseClock(ri.Start)
		if err != nil {
			return WeekdaySchedule{}, err
		}
		end, err := ParseClock(ri.End)
		if err != nil {
			return WeekdaySchedule{}, err
		}
		iv, err := NewInterval(start, end)
		if err != nil {
			return WeekdaySchedule{}, err
		}
		intervals = append(intervals, iv)
	}
	return NewWeekdaySchedule(day, true, intervals)
}

func (w WeeklyHours) Encode() map[string]RawDay {
	out := make(map[string]RawDay, len(w))
	for i, d := range w {
		rd := RawDay{IsOpen: d.IsOpen, Intervals: []RawInterval{}}
		for _, iv := range d.Intervals {
			rd.Intervals = append(rd.Intervals, RawInterval{Start: FormatClock(iv.Start), End: FormatClock(iv.End)})
		}
		out[strconv.Itoa(i)] = rd
	}
	return out
}
