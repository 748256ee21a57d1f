package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Weekday is a repeat-day marker. Its string value is the persisted spelling.
type Weekday string

const (
	Sunday    Weekday = "sun"
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
)

type weekdayEntry struct {
	marker   Weekday
	name     string
	calendar int
	std      time.Weekday
}

// weekdayTable is the only place markers are related to day numbers.
// Calendar numbering is Sunday=1 .. Saturday=7. Nothing may rely on the
// declaration order of the constants above.
var weekdayTable = []weekdayEntry{
	{marker: Sunday, name: "sunday", calendar: 1, std: time.Sunday},
	{marker: Monday, name: "monday", calendar: 2, std: time.Monday},
	{marker: Tuesday, name: "tuesday", calendar: 3, std: time.Tuesday},
	{marker: Wednesday, name: "wednesday", calendar: 4, std: time.Wednesday},
	{marker: Thursday, name: "thursday", calendar: 5, std: time.Thursday},
	{marker: Friday, name: "friday", calendar: 6, std: time.Friday},
	{marker: Saturday, name: "saturday", calendar: 7, std: time.Saturday},
}

func lookupWeekday(match func(weekdayEntry) bool) (weekdayEntry, bool) {
	for _, e := range weekdayTable {
		if match(e) {
			return e, true
		}
	}

	return weekdayEntry{}, false
}

// NewWeekday accepts a marker ("mon") or a full English day name ("Monday"),
// case-insensitively.
func NewWeekday(s string) (Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))

	e, ok := lookupWeekday(func(e weekdayEntry) bool { return string(e.marker) == key || e.name == key })
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidWeekday, s)
	}

	return e.marker, nil
}

// WeekdayFromCalendarNumber maps Sunday=1 .. Saturday=7 onto a marker.
func WeekdayFromCalendarNumber(n int) (Weekday, error) {
	e, ok := lookupWeekday(func(e weekdayEntry) bool { return e.calendar == n })
	if !ok {
		return "", fmt.Errorf("%w: calendar day %d", ErrInvalidWeekday, n)
	}

	return e.marker, nil
}

func WeekdayFromTime(d time.Weekday) Weekday {
	e, _ := lookupWeekday(func(e weekdayEntry) bool { return e.std == d })

	return e.marker
}

func (w Weekday) IsValid() bool {
	_, ok := lookupWeekday(func(e weekdayEntry) bool { return e.marker == w })

	return ok
}

// CalendarNumber returns Sunday=1 .. Saturday=7, or 0 for an unknown marker.
func (w Weekday) CalendarNumber() int {
	e, _ := lookupWeekday(func(e weekdayEntry) bool { return e.marker == w })

	return e.calendar
}

// TimeWeekday returns the standard library weekday. ok is false for an unknown marker.
func (w Weekday) TimeWeekday() (time.Weekday, bool) {
	e, ok := lookupWeekday(func(e weekdayEntry) bool { return e.marker == w })

	return e.std, ok
}

func (w Weekday) String() string {
	return string(w)
}

// RepeatDays is a duplicate-free set of weekdays ordered by calendar number.
// The empty set means a one-time alarm.
type RepeatDays struct {
	days []Weekday
}

func NewRepeatDays(days ...Weekday) (RepeatDays, error) {
	seen := make(map[Weekday]struct{}, len(days))
	out := make([]Weekday, 0, len(days))

	for _, d := range days {
		if !d.IsValid() {
			return RepeatDays{}, fmt.Errorf("%w: %s", ErrInvalidWeekday, d)
		}

		if _, dup := seen[d]; dup {
			continue
		}

		seen[d] = struct{}{}
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CalendarNumber() < out[j].CalendarNumber()
	})

	return RepeatDays{days: out}, nil
}

func MustRepeatDays(days ...Weekday) RepeatDays {
	r, err := NewRepeatDays(days...)
	if err != nil {
		panic(err)
	}

	return r
}

func Weekdays() RepeatDays {
	return MustRepeatDays(Monday, Tuesday, Wednesday, Thursday, Friday)
}

func (r RepeatDays) IsEmpty() bool {
	return len(r.days) == 0
}

func (r RepeatDays) Len() int {
	return len(r.days)
}

func (r RepeatDays) Contains(d Weekday) bool {
	for _, x := range r.days {
		if x == d {
			return true
		}
	}

	return false
}

func (r RepeatDays) ToSlice() []Weekday {
	out := make([]Weekday, len(r.days))
	copy(out, r.days)

	return out
}

func (r RepeatDays) Strings() []string {
	out := make([]string, len(r.days))
	for i, d := range r.days {
		out[i] = string(d)
	}

	return out
}

func (r RepeatDays) Equals(other RepeatDays) bool {
	if len(r.days) != len(other.days) {
		return false
	}

	for i := range r.days {
		if r.days[i] != other.days[i] {
			return false
		}
	}

	return true
}
