package gorm

import (
	"context"
	"time"

	"github.com/bornholm/remindme/internal/core/model"
	"github.com/bornholm/remindme/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateTask implements port.TaskStore.
func (s *Store) CreateTask(ctx context.Context, owner model.OwnerID, description string, dueAt *time.Time) (model.TaskID, error) {
	if err := checkInstant(dueAt); err != nil {
		return 0, errors.WithStack(err)
	}

	task := &Task{
		OwnerID:     string(owner),
		Description: description,
		CreatedAt:   s.clock().UnixNano(),
		DueAt:       toUnixNano(dueAt),
	}

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Create(task).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.BUSY, sqlite3.LOCKED)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return model.TaskID(task.ID), nil
}

// QueryTasks implements port.TaskStore.
func (s *Store) QueryTasks(ctx context.Context, owner model.OwnerID) ([]model.Task, error) {
	var tasks []*Task

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		err := db.Where("owner_id = ?", string(owner)).
			Order("created_at asc").
			Order("id asc").
			Find(&tasks).Error
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.BUSY, sqlite3.LOCKED)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return wrapTasks(tasks), nil
}

// GetTaskByID implements port.TaskStore.
func (s *Store) GetTaskByID(ctx context.Context, owner model.OwnerID, id model.TaskID) (model.Task, error) {
	var task Task

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.First(&task, "id = ? and owner_id = ?", int64(id), string(owner)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.BUSY, sqlite3.LOCKED)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedTask{&task}, nil
}

// UpdateTask implements port.TaskStore.
func (s *Store) UpdateTask(ctx context.Context, id model.TaskID, description string, dueAt *time.Time) error {
	if err := checkInstant(dueAt); err != nil {
		return errors.WithStack(err)
	}

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		result := db.Model(&Task{}).
			Where("id = ?", int64(id)).
			Updates(map[string]any{
				"description":       description,
				"due_at":            toUnixNano(dueAt),
				"delivery_attempts": 0,
			})
		if result.Error != nil {
			return errors.WithStack(result.Error)
		}

		if result.RowsAffected == 0 {
			return errors.WithStack(port.ErrNotFound)
		}

		return nil
	}, sqlite3.BUSY, sqlite3.LOCKED)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// DeleteTask implements port.TaskStore.
func (s *Store) DeleteTask(ctx context.Context, id model.TaskID) error {
	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Delete(&Task{}, "id = ?", int64(id)).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.BUSY, sqlite3.LOCKED)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// QueryDueTasks implements port.TaskStore.
func (s *Store) QueryDueTasks(ctx context.Context, now time.Time) ([]model.Task, error) {
	var tasks []*Task

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		err := db.Where("due_at is not null and due_at <= ?", now.UnixNano()).
			Order("due_at asc").
			Order("id asc").
			Find(&tasks).Error
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.BUSY, sqlite3.LOCKED)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return wrapTasks(tasks), nil
}

// RecordDeliveryFailure implements port.TaskStore.
func (s *Store) RecordDeliveryFailure(ctx context.Context, id model.TaskID) (int, error) {
	var attempts int

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			result := tx.Model(&Task{}).
				Where("id = ?", int64(id)).
				Update("delivery_attempts", gorm.Expr("delivery_attempts + 1"))
			if result.Error != nil {
				return errors.WithStack(result.Error)
			}

			if result.RowsAffected == 0 {
				return errors.WithStack(port.ErrNotFound)
			}

			var task Task
			if err := tx.Select("delivery_attempts").First(&task, "id = ?", int64(id)).Error; err != nil {
				return errors.WithStack(err)
			}

			attempts = task.DeliveryAttempts

			return nil
		})
	}, sqlite3.BUSY, sqlite3.LOCKED)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return attempts, nil
}
