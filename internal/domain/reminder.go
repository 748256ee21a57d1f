package domain

import (
	"time"
)

type ReminderKind string

const (
	ReminderPrimary ReminderKind = "primary"
	ReminderBackup  ReminderKind = "backup"
)

func (k ReminderKind) IsValid() bool {
	return k == ReminderPrimary || k == ReminderBackup
}

// ReminderIdentity addresses one outstanding reminder in the notifier.
type ReminderIdentity string

type identitySpelling func(id AlarmID, kind ReminderKind) (ReminderIdentity, bool)

// identitySpellings lists every identity format ever issued, current first.
// A scheme change appends here; cancellation always covers all entries.
var identitySpellings = []identitySpelling{
	func(id AlarmID, kind ReminderKind) (ReminderIdentity, bool) {
		return ReminderIdentity("alarm." + id.String() + "." + string(kind)), true
	},
	func(id AlarmID, kind ReminderKind) (ReminderIdentity, bool) {
		if kind == ReminderBackup {
			return ReminderIdentity(id.String() + "-backup"), true
		}

		return ReminderIdentity(id.String()), true
	},
}

func CurrentReminderIdentity(id AlarmID, kind ReminderKind) ReminderIdentity {
	identity, _ := identitySpellings[0](id, kind)

	return identity
}

// ReminderIdentities returns the current and all legacy identities for one slot.
func ReminderIdentities(id AlarmID, kind ReminderKind) []ReminderIdentity {
	out := make([]ReminderIdentity, 0, len(identitySpellings))
	for _, spell := range identitySpellings {
		if identity, ok := spell(id, kind); ok {
			out = append(out, identity)
		}
	}

	return out
}

func AllReminderIdentities(id AlarmID) []ReminderIdentity {
	return append(ReminderIdentities(id, ReminderPrimary), ReminderIdentities(id, ReminderBackup)...)
}

// StaleReminderIdentities lists the identities in candidates that plan does
// not reissue. A reissued identity is replaced in place by its schedule
// command and must not also be cancelled, since the notifier gives no
// ordering guarantee between the two.
func StaleReminderIdentities(candidates []ReminderIdentity, plan []ReminderRequest) []ReminderIdentity {
	reissued := make(map[ReminderIdentity]struct{}, len(plan))
	for _, req := range plan {
		reissued[req.Identity] = struct{}{}
	}

	out := make([]ReminderIdentity, 0, len(candidates))
	for _, identity := range candidates {
		if _, ok := reissued[identity]; !ok {
			out = append(out, identity)
		}
	}

	return out
}

// ReminderKindOf resolves which slot of alarm id an identity addresses, in
// any spelling ever issued.
func ReminderKindOf(id AlarmID, identity ReminderIdentity) (ReminderKind, bool) {
	for _, kind := range []ReminderKind{ReminderPrimary, ReminderBackup} {
		for _, candidate := range ReminderIdentities(id, kind) {
			if candidate == identity {
				return kind, true
			}
		}
	}

	return "", false
}

type ReminderPayload struct {
	AlarmID AlarmID
	Label   string
	Kind    ReminderKind
}

type ReminderRequest struct {
	Identity ReminderIdentity
	FiresAt  time.Time
	Payload  ReminderPayload
}

// PlanReminders computes the outstanding reminder set an alarm should have
// at now. A disabled alarm has none.
func PlanReminders(alarm *Alarm, now time.Time) []ReminderRequest {
	if !alarm.IsEnabled() {
		return nil
	}

	next := NextFireInstant(now, alarm.TimeOfDay(), alarm.RepeatDays())

	plan := []ReminderRequest{
		newReminderRequest(alarm, ReminderPrimary, next),
	}

	if alarm.BackupEnabled() {
		plan = append(plan, newReminderRequest(alarm, ReminderBackup, next.Add(BackupOffset(alarm.BackupMinutes()))))
	}

	return plan
}

func newReminderRequest(alarm *Alarm, kind ReminderKind, at time.Time) ReminderRequest {
	return ReminderRequest{
		Identity: CurrentReminderIdentity(alarm.ID(), kind),
		FiresAt:  at,
		Payload: ReminderPayload{
			AlarmID: alarm.ID(),
			Label:   alarm.DisplayLabel(),
			Kind:    kind,
		},
	}
}
