package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bornholm/remindme/internal/core/model"
	"github.com/bornholm/remindme/internal/core/port"
	"github.com/pkg/errors"
)

type fakeTaskStore struct {
	mutex  sync.Mutex
	nextID model.TaskID
	tasks  map[model.TaskID]*model.BaseTask
	now    func() time.Time

	// failWith, when set, makes every operation fail with the given error
	failWith error
}

func newFakeTaskStore(now func() time.Time) *fakeTaskStore {
	return &fakeTaskStore{
		tasks: map[model.TaskID]*model.BaseTask{},
		now:   now,
	}
}

func (s *fakeTaskStore) CreateTask(ctx context.Context, owner model.OwnerID, description string, dueAt *time.Time) (model.TaskID, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.failWith != nil {
		return 0, errors.WithStack(s.failWith)
	}

	s.nextID++
	s.tasks[s.nextID] = model.NewTask(s.nextID, owner, description, s.now(), dueAt, 0)

	return s.nextID, nil
}

func (s *fakeTaskStore) QueryTasks(ctx context.Context, owner model.OwnerID) ([]model.Task, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.failWith != nil {
		return nil, errors.WithStack(s.failWith)
	}

	tasks := make([]model.Task, 0)
	for _, t := range s.sorted() {
		if t.Owner() == owner {
			tasks = append(tasks, t)
		}
	}

	return tasks, nil
}

func (s *fakeTaskStore) GetTaskByID(ctx context.Context, owner model.OwnerID, id model.TaskID) (model.Task, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.failWith != nil {
		return nil, errors.WithStack(s.failWith)
	}

	task, exists := s.tasks[id]
	if !exists || task.Owner() != owner {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	return task, nil
}

func (s *fakeTaskStore) UpdateTask(ctx context.Context, id model.TaskID, description string, dueAt *time.Time) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.failWith != nil {
		return errors.WithStack(s.failWith)
	}

	task, exists := s.tasks[id]
	if !exists {
		return errors.WithStack(port.ErrNotFound)
	}

	s.tasks[id] = model.NewTask(id, task.Owner(), description, task.CreatedAt(), dueAt, 0)

	return nil
}

func (s *fakeTaskStore) DeleteTask(ctx context.Context, id model.TaskID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.failWith != nil {
		return errors.WithStack(s.failWith)
	}

	delete(s.tasks, id)

	return nil
}

func (s *fakeTaskStore) QueryDueTasks(ctx context.Context, now time.Time) ([]model.Task, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.failWith != nil {
		return nil, errors.WithStack(s.failWith)
	}

	tasks := make([]model.Task, 0)
	for _, t := range s.sorted() {
		if t.DueAt() != nil && !t.DueAt().After(now) {
			tasks = append(tasks, t)
		}
	}

	return tasks, nil
}

func (s *fakeTaskStore) RecordDeliveryFailure(ctx context.Context, id model.TaskID) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.failWith != nil {
		return 0, errors.WithStack(s.failWith)
	}

	task, exists := s.tasks[id]
	if !exists {
		return 0, errors.WithStack(port.ErrNotFound)
	}

	attempts := task.DeliveryAttempts() + 1
	s.tasks[id] = model.NewTask(id, task.Owner(), task.Description(), task.CreatedAt(), task.DueAt(), attempts)

	return attempts, nil
}

func (s *fakeTaskStore) count() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.tasks)
}

func (s *fakeTaskStore) sorted() []*model.BaseTask {
	tasks := make([]*model.BaseTask, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].ID() < tasks[j].ID()
	})

	return tasks
}

var _ port.TaskStore = &fakeTaskStore{}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
