package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Jpcostan/rise-and-move-ios/internal/domain"
)

// AlarmStore is the single source of truth for alarms. All mutations are
// serialized; each one persists the whole collection and then reconciles the
// affected alarm before returning. Persistence failures are logged and the
// in-memory collection stays authoritative for the running process.
type AlarmStore struct {
	mu         sync.Mutex
	alarms     []*domain.Alarm
	repo       domain.AlarmRepository
	reconciler *Reconciler
}

func NewAlarmStore(repo domain.AlarmRepository, reconciler *Reconciler) *AlarmStore {
	return &AlarmStore{
		repo:       repo,
		reconciler: reconciler,
	}
}

// Load replaces the in-memory collection with the persisted one and
// reconciles every alarm, since outstanding reminders may not have survived
// a restart. A load failure leaves an empty collection and is returned for
// logging.
func (s *AlarmStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	alarms, err := s.repo.LoadAll(ctx)
	if err != nil {
		slog.Error("failed to load alarms, starting empty",
			"error", err,
		)

		s.alarms = nil

		return err
	}

	s.alarms = alarms

	for _, a := range s.alarms {
		s.reconciler.Reconcile(ctx, a)
	}

	slog.Info("alarms loaded",
		"count", len(s.alarms),
	)

	return nil
}

func (s *AlarmStore) Add(ctx context.Context, alarm *domain.Alarm) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(alarm.ID()) >= 0 {
		return domain.ErrAlarmAlreadyExists
	}

	stored := alarm.Clone()
	s.alarms = append(s.alarms, stored)

	s.commit(ctx, stored)

	slog.Info("alarm added",
		"alarm_id", stored.ID().String(),
		"state", string(stored.State()),
	)

	return nil
}

// Update replaces the record with the same id.
func (s *AlarmStore) Update(ctx context.Context, alarm *domain.Alarm) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(alarm.ID())
	if i < 0 {
		return domain.ErrAlarmNotFound
	}

	stored := alarm.Clone()
	s.alarms[i] = stored

	s.commit(ctx, stored)

	slog.Info("alarm updated",
		"alarm_id", stored.ID().String(),
		"state", string(stored.State()),
	)

	return nil
}

// Delete removes the record and clears both reminder kinds unconditionally.
func (s *AlarmStore) Delete(ctx context.Context, id domain.AlarmID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		// Clear anyway: reminders may outlive a record removed elsewhere.
		s.reconciler.Clear(ctx, id)

		return domain.ErrAlarmNotFound
	}

	s.alarms = append(s.alarms[:i], s.alarms[i+1:]...)

	s.persist(ctx)
	s.reconciler.Clear(ctx, id)

	slog.Info("alarm deleted",
		"alarm_id", id.String(),
	)

	return nil
}

func (s *AlarmStore) SetEnabled(ctx context.Context, id domain.AlarmID, enabled bool) (*domain.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, domain.ErrAlarmNotFound
	}

	stored := s.alarms[i]
	stored.SetEnabled(enabled)

	s.commit(ctx, stored)

	slog.Info("alarm enablement set",
		"alarm_id", id.String(),
		"enabled", enabled,
	)

	return stored.Clone(), nil
}

// MarkFired applies the post-acknowledgement transition: one-time alarms
// are disabled, repeating alarms are re-armed for their next occurrence.
func (s *AlarmStore) MarkFired(ctx context.Context, id domain.AlarmID) (*domain.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, domain.ErrAlarmNotFound
	}

	stored := s.alarms[i]
	state := stored.Fire()

	s.commit(ctx, stored)

	slog.Info("alarm fired",
		"alarm_id", id.String(),
		"one_time", stored.IsOneTime(),
		"state", string(state),
	)

	return stored.Clone(), nil
}

// ReconcileAll re-runs reconciliation for every alarm. It is idempotent and
// safe to call on every foreground or resync pass.
func (s *AlarmStore) ReconcileAll(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	scheduled := 0
	for _, a := range s.alarms {
		scheduled += len(s.reconciler.Reconcile(ctx, a))
	}

	slog.Debug("all alarms reconciled",
		"alarms", len(s.alarms),
		"reminders", scheduled,
	)

	return scheduled
}

func (s *AlarmStore) Get(id domain.AlarmID) (*domain.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, domain.ErrAlarmNotFound
	}

	return s.alarms[i].Clone(), nil
}

// Snapshot returns copies of all alarms in insertion order.
func (s *AlarmStore) Snapshot() []*domain.Alarm {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *AlarmStore) snapshotLocked() []*domain.Alarm {
	out := make([]*domain.Alarm, len(s.alarms))
	for i, a := range s.alarms {
		out[i] = a.Clone()
	}

	return out
}

func (s *AlarmStore) indexOf(id domain.AlarmID) int {
	for i, a := range s.alarms {
		if a.ID().Equals(id) {
			return i
		}
	}

	return -1
}

func (s *AlarmStore) commit(ctx context.Context, changed *domain.Alarm) {
	s.persist(ctx)
	s.reconciler.Reconcile(ctx, changed.Clone())
}

func (s *AlarmStore) persist(ctx context.Context) {
	if err := s.repo.SaveAll(ctx, s.snapshotLocked()); err != nil {
		slog.Error("failed to persist alarms",
			"error", err,
		)
	}
}
