package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bornholm/remindme/internal/core/model"
	"github.com/bornholm/remindme/internal/core/port"
	"github.com/bornholm/remindme/internal/metrics"
	"github.com/bornholm/remindme/internal/timeexpr"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var ErrEmptyDescription = errors.WithMessage(port.ErrValidation, "task description is empty")

type TaskManagerOptions struct {
	// Parser defaults to a parser reading the Clock
	Parser *timeexpr.Parser
	Clock  func() time.Time
}

type TaskManagerOptionFunc func(opts *TaskManagerOptions)

func NewTaskManagerOptions(funcs ...TaskManagerOptionFunc) *TaskManagerOptions {
	opts := &TaskManagerOptions{
		Clock: time.Now,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithTaskManagerParser(parser *timeexpr.Parser) TaskManagerOptionFunc {
	return func(opts *TaskManagerOptions) {
		opts.Parser = parser
	}
}

func WithTaskManagerClock(clock func() time.Time) TaskManagerOptionFunc {
	return func(opts *TaskManagerOptions) {
		opts.Clock = clock
	}
}

// TaskManager implements the task use cases on top of a port.TaskStore,
// turning free text into validated task descriptions and reminders.
type TaskManager struct {
	store  port.TaskStore
	parser *timeexpr.Parser
}

func NewTaskManager(store port.TaskStore, funcs ...TaskManagerOptionFunc) *TaskManager {
	opts := NewTaskManagerOptions(funcs...)

	parser := opts.Parser
	if parser == nil {
		parser = timeexpr.NewParser(timeexpr.WithClock(opts.Clock))
	}

	return &TaskManager{
		store:  store,
		parser: parser,
	}
}

// AddTask creates a task from user input, extracting an optional reminder
func (m *TaskManager) AddTask(ctx context.Context, owner model.OwnerID, text string) (model.Task, error) {
	description, dueAt, err := m.parse(text)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	taskID, err := m.store.CreateTask(ctx, owner, description, dueAt)
	if err != nil {
		return nil, errors.Wrap(err, "could not create task")
	}

	metrics.TaskOperations.With(prometheus.Labels{
		metrics.LabelOperation: metrics.OperationCreate,
	}).Inc()

	slog.DebugContext(ctx, "task created", slog.Int64("taskID", int64(taskID)), slog.Bool("reminder", dueAt != nil))

	task, err := m.store.GetTaskByID(ctx, owner, taskID)
	if err != nil {
		return nil, errors.Wrap(err, "could not retrieve created task")
	}

	return task, nil
}

// EditTask replaces the description and reminder of an existing task. The
// reminder is cleared when the input holds no time phrase. Invalid input
// leaves the task untouched.
func (m *TaskManager) EditTask(ctx context.Context, owner model.OwnerID, taskID model.TaskID, text string) (model.Task, error) {
	existing, err := m.store.GetTaskByID(ctx, owner, taskID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	description, dueAt, err := m.parse(text)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := m.store.UpdateTask(ctx, taskID, description, dueAt); err != nil {
		return nil, errors.Wrap(err, "could not update task")
	}

	metrics.TaskOperations.With(prometheus.Labels{
		metrics.LabelOperation: metrics.OperationUpdate,
	}).Inc()

	return model.NewTask(taskID, owner, description, existing.CreatedAt(), dueAt, 0), nil
}

func (m *TaskManager) ListTasks(ctx context.Context, owner model.OwnerID) ([]model.Task, error) {
	tasks, err := m.store.QueryTasks(ctx, owner)
	if err != nil {
		return nil, errors.Wrap(err, "could not query tasks")
	}

	return tasks, nil
}

func (m *TaskManager) GetTask(ctx context.Context, owner model.OwnerID, taskID model.TaskID) (model.Task, error) {
	task, err := m.store.GetTaskByID(ctx, owner, taskID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return task, nil
}

// CompleteTask removes a task the user marked as done. It returns
// port.ErrNotFound if the task was already removed, for example by a
// reminder sweep.
func (m *TaskManager) CompleteTask(ctx context.Context, owner model.OwnerID, taskID model.TaskID) error {
	return m.remove(ctx, owner, taskID, metrics.OperationComplete)
}

// DeleteTask removes a task. It returns port.ErrNotFound if the task does
// not exist anymore.
func (m *TaskManager) DeleteTask(ctx context.Context, owner model.OwnerID, taskID model.TaskID) error {
	return m.remove(ctx, owner, taskID, metrics.OperationDelete)
}

func (m *TaskManager) remove(ctx context.Context, owner model.OwnerID, taskID model.TaskID, operation string) error {
	if _, err := m.store.GetTaskByID(ctx, owner, taskID); err != nil {
		return errors.WithStack(err)
	}

	if err := m.store.DeleteTask(ctx, taskID); err != nil {
		return errors.Wrap(err, "could not delete task")
	}

	metrics.TaskOperations.With(prometheus.Labels{
		metrics.LabelOperation: operation,
	}).Inc()

	return nil
}

func (m *TaskManager) parse(text string) (string, *time.Time, error) {
	description, dueAt, err := m.parser.Parse(text)
	if err != nil {
		return "", nil, errors.WithStack(fmt.Errorf("%w: %w", port.ErrValidation, err))
	}

	if description == "" {
		return "", nil, errors.WithStack(ErrEmptyDescription)
	}

	return description, dueAt, nil
}
