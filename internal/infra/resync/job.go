package resync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Reconciler re-derives every alarm's outstanding reminders.
type Reconciler interface {
	ReconcileAll(ctx context.Context) int
}

// Job runs the foreground reconciliation pass on a cron schedule. Each pass
// is idempotent, so overlapping or missed runs are harmless; overlapping
// runs are skipped anyway. Reminders follow the zone the reconciler's clock
// reports at the time of the pass.
type Job struct {
	cron       *cron.Cron
	reconciler Reconciler
	clock      func() time.Time
}

func NewJob(reconciler Reconciler, clock func() time.Time) *Job {
	logger := cronLogger{}

	return &Job{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		reconciler: reconciler,
		clock:      clock,
	}
}

// Schedule registers the pass under a standard cron spec or descriptor
// such as "@every 15m".
func (j *Job) Schedule(spec string) (cron.EntryID, error) {
	id, err := j.cron.AddFunc(spec, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return 0, fmt.Errorf("invalid resync schedule %q: %w", spec, err)
	}

	return id, nil
}

// Run performs one pass immediately.
func (j *Job) Run(ctx context.Context) int {
	now := j.clock()

	reminders := j.reconciler.ReconcileAll(ctx)

	slog.Debug("resync pass completed",
		"reminders", reminders,
		"zone", now.Location().String(),
		"took", time.Since(now),
	)

	return reminders
}

func (j *Job) Start() {
	j.cron.Start()
}

// Stop waits for a running pass to finish.
func (j *Job) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
