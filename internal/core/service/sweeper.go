package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/remindme/internal/core/model"
	"github.com/bornholm/remindme/internal/core/port"
	"github.com/bornholm/remindme/internal/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/xid"
)

var ErrInvalidSweepInterval = errors.New("sweep interval must be positive")

type SweeperOptions struct {
	Interval            time.Duration
	Clock               func() time.Time
	MaxDeliveryAttempts int
	ErrorReporter       func(ctx context.Context, err error)
}

type SweeperOptionFunc func(opts *SweeperOptions)

func NewSweeperOptions(funcs ...SweeperOptionFunc) *SweeperOptions {
	opts := &SweeperOptions{
		Interval:            time.Minute,
		Clock:               time.Now,
		MaxDeliveryAttempts: 3,
		ErrorReporter:       func(ctx context.Context, err error) {},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithSweeperInterval(interval time.Duration) SweeperOptionFunc {
	return func(opts *SweeperOptions) {
		opts.Interval = interval
	}
}

func WithSweeperClock(clock func() time.Time) SweeperOptionFunc {
	return func(opts *SweeperOptions) {
		opts.Clock = clock
	}
}

// WithSweeperMaxDeliveryAttempts sets how many failed deliveries a reminder
// tolerates before being dropped. A value of 1 drops a reminder on its
// first failure.
func WithSweeperMaxDeliveryAttempts(attempts int) SweeperOptionFunc {
	return func(opts *SweeperOptions) {
		opts.MaxDeliveryAttempts = attempts
	}
}

func WithSweeperErrorReporter(reporter func(ctx context.Context, err error)) SweeperOptionFunc {
	return func(opts *SweeperOptions) {
		opts.ErrorReporter = reporter
	}
}

type SweepReport struct {
	Due       int
	Delivered int
	Failed    int
	Dropped   int
}

// Sweeper periodically delivers the reminders of due tasks and removes the
// delivered tasks.
type Sweeper struct {
	store    port.TaskStore
	notifier port.Notifier

	interval            time.Duration
	clock               func() time.Time
	maxDeliveryAttempts int
	reportError         func(ctx context.Context, err error)
}

func NewSweeper(store port.TaskStore, notifier port.Notifier, funcs ...SweeperOptionFunc) *Sweeper {
	opts := NewSweeperOptions(funcs...)

	maxDeliveryAttempts := opts.MaxDeliveryAttempts
	if maxDeliveryAttempts < 1 {
		maxDeliveryAttempts = 1
	}

	return &Sweeper{
		store:               store,
		notifier:            notifier,
		interval:            opts.Interval,
		clock:               opts.Clock,
		maxDeliveryAttempts: maxDeliveryAttempts,
		reportError:         opts.ErrorReporter,
	}
}

// Run sweeps once per interval until ctx is canceled
func (s *Sweeper) Run(ctx context.Context) error {
	if s.interval <= 0 {
		return errors.Wrapf(ErrInvalidSweepInterval, "invalid interval '%s'", s.interval)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.DebugContext(ctx, "starting reminder sweeper", slog.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			slog.DebugContext(ctx, "stopping reminder sweeper")
			return nil
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				slog.ErrorContext(ctx, "reminder sweep failed", slogx.Error(err))
				s.reportError(ctx, err)
			}
		}
	}
}

// Sweep delivers every reminder due at the current instant. Delivery
// failures are recorded on the task which is kept for the next sweep until
// it runs out of attempts.
func (s *Sweeper) Sweep(ctx context.Context) (*SweepReport, error) {
	start := time.Now()
	defer func() {
		metrics.SweepDuration.Observe(time.Since(start).Seconds())
	}()

	ctx = slogx.WithAttrs(ctx, slog.String("sweepID", xid.New().String()))

	now := s.clock()

	tasks, err := s.store.QueryDueTasks(ctx, now)
	if err != nil {
		return nil, errors.Wrap(err, "could not query due tasks")
	}

	report := &SweepReport{Due: len(tasks)}

	for _, task := range tasks {
		taskCtx := slogx.WithAttrs(ctx,
			slog.Int64("taskID", int64(task.ID())),
			slog.String("owner", string(task.Owner())),
		)

		if err := s.notifier.Notify(taskCtx, task); err != nil {
			report.Failed++
			countReminder(metrics.OutcomeFailed)

			err = errors.WithStack(err)
			slog.WarnContext(taskCtx, "could not deliver reminder", slogx.Error(err))
			s.reportError(taskCtx, err)

			if s.handleFailure(taskCtx, task.ID()) {
				report.Dropped++
				countReminder(metrics.OutcomeDropped)
			}

			continue
		}

		report.Delivered++
		countReminder(metrics.OutcomeDelivered)

		if err := s.store.DeleteTask(taskCtx, task.ID()); err != nil {
			err = errors.Wrap(err, "could not delete delivered task")
			slog.ErrorContext(taskCtx, "reminder delivered but task not removed", slogx.Error(err))
			s.reportError(taskCtx, err)
		}
	}

	if report.Due > 0 {
		slog.InfoContext(ctx, "reminder sweep done",
			slog.Int("due", report.Due),
			slog.Int("delivered", report.Delivered),
			slog.Int("failed", report.Failed),
			slog.Int("dropped", report.Dropped),
		)
	}

	return report, nil
}

// handleFailure records a failed delivery and drops the task once it ran
// out of attempts. It returns true if the task was dropped.
func (s *Sweeper) handleFailure(ctx context.Context, taskID model.TaskID) bool {
	attempts, err := s.store.RecordDeliveryFailure(ctx, taskID)
	if err != nil {
		// Removed by its owner in the meantime
		if errors.Is(err, port.ErrNotFound) {
			return false
		}

		err = errors.Wrap(err, "could not record delivery failure")
		slog.ErrorContext(ctx, "could not record delivery failure", slogx.Error(err))
		s.reportError(ctx, err)

		// Unknown attempt count, drop the task rather than notifying in a loop
		attempts = s.maxDeliveryAttempts
	}

	if attempts < s.maxDeliveryAttempts {
		slog.DebugContext(ctx, "reminder kept for retry", slog.Int("attempts", attempts))
		return false
	}

	if err := s.store.DeleteTask(ctx, taskID); err != nil {
		err = errors.Wrap(err, "could not delete undeliverable task")
		slog.ErrorContext(ctx, "could not drop reminder", slogx.Error(err))
		s.reportError(ctx, err)
		return false
	}

	slog.WarnContext(ctx, "reminder dropped after too many delivery failures", slog.Int("attempts", attempts))

	return true
}

func countReminder(outcome string) {
	metrics.Reminders.With(prometheus.Labels{
		metrics.LabelOutcome: outcome,
	}).Inc()
}
