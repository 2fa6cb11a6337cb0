package calendar

import "time"

// Range is an inclusive span of calendar days. A range whose End is before its
// Start is empty: it covers no days and overlaps nothing.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange builds a range with both ends normalized to calendar days.
func NewRange(start, end time.Time) Range {
	return Range{Start: Day(start), End: Day(end)}
}

// Empty reports whether r covers no days.
func (r Range) Empty() bool {
	return Day(r.End).Before(Day(r.Start))
}

// Days returns the number of calendar days in r, counting both ends.
func (r Range) Days() int {
	if r.Empty() {
		return 0
	}
	return DaysBetween(r.Start, r.End) + 1
}

// WorkingDays returns the number of weekdays in r.
func (r Range) WorkingDays() int {
	return WorkingDays(r.Start, r.End)
}

// Contains reports whether the calendar day of t lies inside r.
func (r Range) Contains(t time.Time) bool {
	if r.Empty() {
		return false
	}
	d := Day(t)
	return !d.Before(Day(r.Start)) && !d.After(Day(r.End))
}

// Clamp restricts r to the bounds of outer. The result is empty when the two
// ranges are disjoint.
func (r Range) Clamp(outer Range) Range {
	if ov, ok := Overlap(r, outer); ok {
		return ov
	}
	return Range{Start: Day(r.Start), End: Day(r.Start).AddDate(0, 0, -1)}
}

// Overlap returns the intersection of a and b. The boolean is false when the
// ranges are disjoint or either is empty. Overlap(a, b) == Overlap(b, a).
func Overlap(a, b Range) (Range, bool) {
	if a.Empty() || b.Empty() {
		return Range{}, false
	}
	aStart, aEnd := Day(a.Start), Day(a.End)
	bStart, bEnd := Day(b.Start), Day(b.End)
	if aEnd.Before(bStart) || bEnd.Before(aStart) {
		return Range{}, false
	}

	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	return Range{Start: start, End: end}, true
}

// WorkingDaySet returns the weekdays inside window that are covered by at
// least one of ranges. Overlapping ranges contribute each day once.
func WorkingDaySet(window Range, ranges ...Range) map[time.Time]struct{} {
	days := make(map[time.Time]struct{})
	for _, r := range ranges {
		ov, ok := Overlap(window, r)
		if !ok {
			continue
		}
		for d := ov.Start; !d.After(ov.End); d = d.AddDate(0, 0, 1) {
			if !IsWeekend(d) {
				days[d] = struct{}{}
			}
		}
	}
	return days
}
