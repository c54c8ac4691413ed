// Package availability turns weekly hours and occupied intervals into bookable start times.
package availability

import (
	"time"

	"booking-engine/internal/domain/schedule"
)

// AvailableSlots returns ascending start minutes on date for a service of duration minutes.
// now must already be expressed in the business location; slots at or before the current
// minute of today are dropped, and dates before today yield nothing.
func AvailableSlots(day schedule.WeekdaySchedule, booked []schedule.Interval, duration int, date schedule.Date, granularity int, now time.Time) []int {
	if !day.IsOpen || duration <= 0 || granularity <= 0 {
		return []int{}
	}

	today := schedule.DateOf(now)
	if date.Before(today) {
		return []int{}
	}
	cutoff := -1
	if date == today {
		cutoff = schedule.MinuteOfDay(now)
	}

	slots := []int{}
	for _, open := range day.Intervals {
		for c := open.Start; c+duration <= open.End; c += granularity {
			if c <= cutoff {
				continue
			}
			if overlapsAny(schedule.Interval{Start: c, End: c + duration}, booked) {
				continue
			}
			slots = append(slots, c)
		}
	}
	return slots
}

// Bookable re-checks a single start the same way AvailableSlots would, minus the
// granularity alignment. The write path uses it under the per-key lock.
func Bookable(day schedule.WeekdaySchedule, booked []schedule.Interval, start, duration int, date schedule.Date, now time.Time) bool {
	if duration <= 0 {
		return false
	}
	slot := schedule.Interval{Start: start, End: start + duration}
	if !day.Fits(slot) {
		return false
	}
	today := schedule.DateOf(now)
	if date.Before(today) || (date == today && start <= schedule.MinuteOfDay(now)) {
		return false
	}
	return !overlapsAny(slot, booked)
}

func overlapsAny(slot schedule.Interval, booked []schedule.Interval) bool {
	for _, b := range booked {
		if slot.Overlaps(b) {
			return true
		}
	}
	return false
}
