package gorm

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/remindme/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Options struct {
	MaxRetries  int
	BaseBackoff time.Duration
	Clock       func() time.Time
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		MaxRetries:  5,
		BaseBackoff: 50 * time.Millisecond,
		Clock:       time.Now,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithMaxRetries(maxRetries int) OptionFunc {
	return func(opts *Options) {
		opts.MaxRetries = maxRetries
	}
}

func WithBaseBackoff(backoff time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.BaseBackoff = backoff
	}
}

func WithClock(clock func() time.Time) OptionFunc {
	return func(opts *Options) {
		opts.Clock = clock
	}
}

type Store struct {
	getDatabase func(ctx context.Context) (*gorm.DB, error)
	maxRetries  int
	baseBackoff time.Duration
	clock       func() time.Time
}

func NewStore(db *gorm.DB, funcs ...OptionFunc) *Store {
	opts := NewOptions(funcs...)
	return &Store{
		getDatabase: createGetDatabase(db),
		maxRetries:  opts.MaxRetries,
		baseBackoff: opts.BaseBackoff,
		clock:       opts.Clock,
	}
}

var _ port.TaskStore = &Store{}

func createGetDatabase(db *gorm.DB) func(ctx context.Context) (*gorm.DB, error) {
	var (
		migrateOnce sync.Once
		migrateErr  error
	)

	return func(ctx context.Context) (*gorm.DB, error) {
		migrateOnce.Do(func() {
			models := []any{
				&Task{},
			}

			if err := db.AutoMigrate(models...); err != nil {
				migrateErr = errors.WithStack(err)
				return
			}
		})
		if migrateErr != nil {
			return nil, errors.WithStack(migrateErr)
		}

		return db.WithContext(ctx), nil
	}
}

// withRetry runs fn and runs it again, with an exponential backoff, as long
// as it fails with one of the given SQLite error codes.
func (s *Store) withRetry(ctx context.Context, fn func(ctx context.Context, db *gorm.DB) error, codes ...sqlite3.ErrorCode) error {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return toStorageError(err)
	}

	backoff := s.baseBackoff

	for attempt := 0; ; attempt++ {
		err := fn(ctx, db)
		if err == nil {
			return nil
		}

		if attempt >= s.maxRetries || !hasErrorCode(err, codes...) {
			return toStorageError(err)
		}

		slog.DebugContext(ctx, "database is busy, retrying", slog.Int("attempt", attempt+1), slog.Duration("backoff", backoff), slogx.Error(err))

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.WithStack(ctx.Err())
		case <-timer.C:
		}

		backoff *= 2
	}
}

func hasErrorCode(err error, codes ...sqlite3.ErrorCode) bool {
	var sqliteErr *sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	for _, c := range codes {
		if sqliteErr.Code() == c {
			return true
		}
	}

	return false
}

// toStorageError flags unexpected database failures as port.ErrStorage while
// letting domain errors through untouched.
func toStorageError(err error) error {
	if errors.Is(err, port.ErrNotFound) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, port.ErrStorage) {
		return err
	}

	return errors.WithStack(fmt.Errorf("%w: %w", port.ErrStorage, err))
}
