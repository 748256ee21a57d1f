package calendar

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"

	"github.com/Jpcostan/rise-and-move-ios/internal/app"
)

const (
	productID     = "-//rise-and-move//alarm export//EN"
	eventDuration = time.Minute
)

var rruleWeekdays = map[string]rrule.Weekday{
	"sun": rrule.SU,
	"mon": rrule.MO,
	"tue": rrule.TU,
	"wed": rrule.WE,
	"thu": rrule.TH,
	"fri": rrule.FR,
	"sat": rrule.SA,
}

// Build returns a calendar with one event per armed alarm, placed at its
// next fire instant. Repeating alarms carry a weekly RRULE and a backup
// reminder becomes a VALARM relative to the start.
func Build(alarms []app.AlarmOutput, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, a := range alarms {
		if !a.Enabled || a.NextFireAt == nil {
			continue
		}

		cal.Children = append(cal.Children, buildEvent(a, stamp).Component)
	}

	return cal
}

func Encode(w io.Writer, cal *ical.Calendar) error {
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}

	return nil
}

func buildEvent(a app.AlarmOutput, stamp time.Time) *ical.Event {
	start := eventTime(*a.NextFireAt)

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, a.ID)
	event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, start)
	event.Props.SetDateTime(ical.PropDateTimeEnd, start.Add(eventDuration))
	event.Props.SetText(ical.PropSummary, a.DisplayLabel)

	if len(a.RepeatDays) > 0 {
		days := make([]rrule.Weekday, 0, len(a.RepeatDays))
		for _, d := range a.RepeatDays {
			if wd, ok := rruleWeekdays[d]; ok {
				days = append(days, wd)
			}
		}

		event.Props.SetRecurrenceRule(&rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: days,
		})
	}

	if a.BackupEnabled {
		event.Children = append(event.Children, backupAlarm(a))
	}

	return event
}

func backupAlarm(a app.AlarmOutput) *ical.Component {
	valarm := ical.NewComponent(ical.CompAlarm)
	valarm.Props.SetText(ical.PropAction, "DISPLAY")
	valarm.Props.SetText(ical.PropDescription, a.DisplayLabel+" (backup)")

	trigger := ical.NewProp(ical.PropTrigger)
	trigger.Value = fmt.Sprintf("PT%dM", a.BackupMinutes)
	valarm.Props.Set(trigger)

	return valarm
}

// eventTime keeps named zones so weekly recurrences follow local wall time.
// Zones without an IANA name are written as UTC.
func eventTime(t time.Time) time.Time {
	switch t.Location().String() {
	case "Local", "UTC", "":
		return t.UTC()
	default:
		return t
	}
}
