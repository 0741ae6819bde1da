package gorm

import (
	"fmt"
	"math"
	"time"

	"github.com/bornholm/remindme/internal/core/model"
	"github.com/bornholm/remindme/internal/core/port"
	"github.com/pkg/errors"
)

var (
	earliestInstant = time.Unix(0, math.MinInt64)
	latestInstant   = time.Unix(0, math.MaxInt64)
)

// Task instants are stored as unix nanoseconds so that SQLite compares
// them numerically.
type Task struct {
	ID               int64  `gorm:"primaryKey;autoIncrement"`
	CreatedAt        int64  `gorm:"autoCreateTime:nano;not null;index"`
	OwnerID          string `gorm:"not null;index"`
	Description      string `gorm:"not null"`
	DueAt            *int64 `gorm:"index"`
	DeliveryAttempts int    `gorm:"not null;default:0"`
}

type wrappedTask struct {
	t *Task
}

// CreatedAt implements model.Task.
func (w *wrappedTask) CreatedAt() time.Time {
	return time.Unix(0, w.t.CreatedAt)
}

// DeliveryAttempts implements model.Task.
func (w *wrappedTask) DeliveryAttempts() int {
	return w.t.DeliveryAttempts
}

// Description implements model.Task.
func (w *wrappedTask) Description() string {
	return w.t.Description
}

// DueAt implements model.Task.
func (w *wrappedTask) DueAt() *time.Time {
	if w.t.DueAt == nil {
		return nil
	}

	dueAt := time.Unix(0, *w.t.DueAt)

	return &dueAt
}

// ID implements model.Task.
func (w *wrappedTask) ID() model.TaskID {
	return model.TaskID(w.t.ID)
}

// Owner implements model.Task.
func (w *wrappedTask) Owner() model.OwnerID {
	return model.OwnerID(w.t.OwnerID)
}

var _ model.Task = &wrappedTask{}

// checkInstant rejects instants that unix nanoseconds cannot hold
func checkInstant(t *time.Time) error {
	if t == nil {
		return nil
	}

	if t.Before(earliestInstant) || t.After(latestInstant) {
		return errors.WithStack(fmt.Errorf("%w: instant '%s' cannot be stored", port.ErrValidation, t.UTC().Format(time.RFC3339)))
	}

	return nil
}

func toUnixNano(t *time.Time) *int64 {
	if t == nil {
		return nil
	}

	nano := t.UnixNano()

	return &nano
}

func wrapTasks(tasks []*Task) []model.Task {
	wrapped := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		wrapped = append(wrapped, &wrappedTask{t})
	}
	return wrapped
}
