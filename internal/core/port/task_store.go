package port

import (
	"context"
	"time"

	"github.com/bornholm/remindme/internal/core/model"
)

type TaskStore interface {
	// CreateTask persists a new task and returns its store assigned identifier
	CreateTask(ctx context.Context, owner model.OwnerID, description string, dueAt *time.Time) (model.TaskID, error)

	// QueryTasks returns the tasks of the given owner, oldest first
	QueryTasks(ctx context.Context, owner model.OwnerID) ([]model.Task, error)

	// GetTaskByID returns the task with the given id, or ErrNotFound if it
	// does not exist or is not owned by owner
	GetTaskByID(ctx context.Context, owner model.OwnerID, id model.TaskID) (model.Task, error)

	// UpdateTask replaces the description and due instant of a task. A nil
	// dueAt clears the reminder. Returns ErrNotFound for unknown ids.
	UpdateTask(ctx context.Context, id model.TaskID, description string, dueAt *time.Time) error

	// DeleteTask removes a task. Deleting an unknown id is not an error.
	DeleteTask(ctx context.Context, id model.TaskID) error

	// QueryDueTasks returns every task with a due instant at or before now
	QueryDueTasks(ctx context.Context, now time.Time) ([]model.Task, error)

	// RecordDeliveryFailure increments the failed delivery counter of a task
	// and returns the new value
	RecordDeliveryFailure(ctx context.Context, id model.TaskID) (int, error)
}
