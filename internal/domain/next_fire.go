package domain

import (
	"time"
)

// zoneProbe is how far either side of a candidate the zone offset is sampled.
// Civil-time transitions are months apart in every real zone.
const zoneProbe = 48 * time.Hour

// NextFireInstant returns the soonest instant strictly after now at which the
// local wall clock (in now's location) reads tod. For a non-empty days set
// only the listed weekdays are eligible and the earliest candidate wins.
//
// Wall-clock times that do not exist on a given date (spring-forward gap)
// keep their minute and are pushed forward by the size of the gap, so 02:30
// on a 02:00->03:00 transition resolves to 03:30. Ambiguous times on a
// fall-back date resolve to their first occurrence.
func NextFireInstant(now time.Time, tod TimeOfDay, days RepeatDays) time.Time {
	loc := now.Location()
	year, month, day := now.Date()

	if days.IsEmpty() {
		today := wallClockInstant(year, month, day, tod, loc)
		if today.After(now) {
			return today
		}

		return wallClockInstant(year, month, day+1, tod, loc)
	}

	var (
		best  time.Time
		found bool
	)

	for _, wd := range days.ToSlice() {
		target, ok := wd.TimeWeekday()
		if !ok {
			continue
		}

		ahead := (int(target) - int(now.Weekday()) + 7) % 7

		candidate := wallClockInstant(year, month, day+ahead, tod, loc)
		if !candidate.After(now) {
			candidate = wallClockInstant(year, month, day+ahead+7, tod, loc)
		}

		if !found || candidate.Before(best) {
			best = candidate
			found = true
		}
	}

	if !found {
		return wallClockInstant(year, month, day+1, tod, loc)
	}

	return best
}

// wallClockInstant resolves a civil date and time of day in loc without
// relying on time.Date's unspecified choice of zone inside a transition.
func wallClockInstant(year int, month time.Month, day int, tod TimeOfDay, loc *time.Location) time.Time {
	year, month, day = time.Date(year, month, day, 12, 0, 0, 0, time.UTC).Date()
	wall := time.Date(year, month, day, tod.Hour(), tod.Minute(), 0, 0, time.UTC)

	before := zoneOffset(wall.Add(-zoneProbe), loc)
	after := zoneOffset(wall.Add(zoneProbe), loc)

	var (
		resolved time.Time
		ok       bool
	)

	for _, off := range []time.Duration{before, after} {
		candidate := wall.Add(-off).In(loc)
		if !readsAs(candidate, year, month, day, tod) {
			continue
		}

		if !ok || candidate.Before(resolved) {
			resolved = candidate
			ok = true
		}
	}

	if ok {
		return resolved
	}

	// Skipped wall time: interpret with the offset in force before the gap.
	return wall.Add(-before).In(loc)
}

func zoneOffset(t time.Time, loc *time.Location) time.Duration {
	_, off := t.In(loc).Zone()

	return time.Duration(off) * time.Second
}

func readsAs(t time.Time, year int, month time.Month, day int, tod TimeOfDay) bool {
	y, m, d := t.Date()

	return y == year && m == month && d == day && t.Hour() == tod.Hour() && t.Minute() == tod.Minute()
}
