package testutil

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Jpcostan/rise-and-move-ios/internal/domain"
)

var ErrScheduleRejected = errors.New("schedule rejected")

// FakeNotifier keeps outstanding reminders keyed by identity, the way a
// host notification center does.
type FakeNotifier struct {
	mu          sync.Mutex
	outstanding map[domain.ReminderIdentity]domain.ReminderRequest
	scheduled   int
	cancelled   int
	rejectKinds map[domain.ReminderKind]bool
	failCancel  bool
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{
		outstanding: make(map[domain.ReminderIdentity]domain.ReminderRequest),
		rejectKinds: make(map[domain.ReminderKind]bool),
	}
}

func (f *FakeNotifier) ScheduleReminder(_ context.Context, req domain.ReminderRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.rejectKinds[req.Payload.Kind] {
		return ErrScheduleRejected
	}

	f.outstanding[req.Identity] = req
	f.scheduled++

	return nil
}

func (f *FakeNotifier) CancelReminders(_ context.Context, identities []domain.ReminderIdentity) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCancel {
		return errors.New("cancel failed")
	}

	for _, id := range identities {
		delete(f.outstanding, id)
	}

	f.cancelled += len(identities)

	return nil
}

func (f *FakeNotifier) AuthorizationCapable(_ context.Context) bool {
	return true
}

func (f *FakeNotifier) Close() error {
	return nil
}

// Put plants a reminder directly, e.g. one issued under a legacy identity.
func (f *FakeNotifier) Put(req domain.ReminderRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.outstanding[req.Identity] = req
}

func (f *FakeNotifier) RejectKind(kind domain.ReminderKind, reject bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.rejectKinds[kind] = reject
}

func (f *FakeNotifier) FailCancel(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failCancel = fail
}

// Outstanding returns reminders for one alarm ordered by fire instant.
func (f *FakeNotifier) Outstanding(id domain.AlarmID) []domain.ReminderRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.ReminderRequest

	for identity, req := range f.outstanding {
		if strings.Contains(string(identity), id.String()) {
			out = append(out, req)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].FiresAt.Before(out[j].FiresAt)
	})

	return out
}

func (f *FakeNotifier) Get(identity domain.ReminderIdentity) (domain.ReminderRequest, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	req, ok := f.outstanding[identity]

	return req, ok
}

func (f *FakeNotifier) TotalOutstanding() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.outstanding)
}

func (f *FakeNotifier) ScheduledCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.scheduled
}
