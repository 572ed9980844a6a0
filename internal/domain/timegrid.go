package domain

import (
	"fmt"
	"time"
)

// SlotStep is the fixed length of a bookable slot.
const SlotStep = 30 * time.Minute

const timeOfDayLayout = "15:04"

// ParseTimeOfDay parses an "HH:MM" string into minutes since midnight.
func ParseTimeOfDay(s string) (int, error) {
	t, err := time.Parse(timeOfDayLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid time of day %q", ErrValidation, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatTimeOfDay renders minutes since midnight as "HH:MM".
func FormatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// SlotTimes generates the ordered start times of a day's bookable grid.
// The grid covers [opening, closing): the closing boundary itself is not a
// slot. An opening at or after closing yields no slots.
func SlotTimes(opening, closing string, step time.Duration) ([]string, error) {
	open, err := ParseTimeOfDay(opening)
	if err != nil {
		return nil, err
	}
	close, err := ParseTimeOfDay(closing)
	if err != nil {
		return nil, err
	}
	if step <= 0 {
		return nil, fmt.Errorf("%w: step must be positive", ErrValidation)
	}

	stepMin := int(step / time.Minute)
	var times []string
	for m := open; m < close; m += stepMin {
		times = append(times, FormatTimeOfDay(m))
	}
	return times, nil
}

// AtTime anchors an "HH:MM" time of day on the calendar day of date.
func AtTime(date time.Time, timeOfDay string) (time.Time, error) {
	minutes, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, date.Location()), nil
}

// SameDay reports whether two instants fall on the same calendar day in a's
// location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share any
// non-zero-duration intersection. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
