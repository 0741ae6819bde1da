package service

import (
	"context"
	"testing"
	"time"

	"github.com/bornholm/remindme/internal/core/model"
	"github.com/bornholm/remindme/internal/core/port"
	"github.com/bornholm/remindme/internal/timeexpr"
	"github.com/pkg/errors"
)

var testNow = time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)

func newTestTaskManager() (*TaskManager, *fakeTaskStore) {
	clock := fixedClock(testNow)
	store := newFakeTaskStore(clock)
	manager := NewTaskManager(store,
		WithTaskManagerClock(clock),
		WithTaskManagerParser(timeexpr.NewParser(timeexpr.WithClock(clock))),
	)
	return manager, store
}

func TestTaskManagerAddTask(t *testing.T) {
	type testCase struct {
		Text                string
		ExpectedDescription string
		ExpectedDueAt       *time.Time
		ExpectedError       error
	}

	at := func(t time.Time) *time.Time { return &t }

	testCases := []testCase{
		{
			Text:                "Buy milk",
			ExpectedDescription: "Buy milk",
		},
		{
			Text:                "Call mom at 18:30",
			ExpectedDescription: "Call mom",
			ExpectedDueAt:       at(time.Date(2026, 10, 17, 18, 30, 0, 0, time.UTC)),
		},
		{
			Text:                "Stretch in 15 minutes",
			ExpectedDescription: "Stretch",
			ExpectedDueAt:       at(testNow.Add(15 * time.Minute)),
		},
		{
			Text:          "   ",
			ExpectedError: port.ErrValidation,
		},
		{
			Text:          "at 9:00",
			ExpectedError: port.ErrValidation,
		},
		{
			Text:          "Party at 25:99",
			ExpectedError: port.ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Text, func(t *testing.T) {
			manager, store := newTestTaskManager()
			ctx := context.Background()

			task, err := manager.AddTask(ctx, "alice", tc.Text)

			if tc.ExpectedError != nil {
				if !errors.Is(err, tc.ExpectedError) {
					t.Fatalf("err: expected '%v', got '%v'", tc.ExpectedError, err)
				}

				if e, g := 0, store.count(); e != g {
					t.Errorf("store.count(): expected '%v', got '%v'", e, g)
				}

				return
			}

			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.ExpectedDescription, task.Description(); e != g {
				t.Errorf("task.Description(): expected '%v', got '%v'", e, g)
			}

			switch {
			case tc.ExpectedDueAt == nil && task.DueAt() != nil:
				t.Errorf("task.DueAt(): expected nil, got '%v'", task.DueAt())
			case tc.ExpectedDueAt != nil && task.DueAt() == nil:
				t.Errorf("task.DueAt(): expected '%v', got nil", tc.ExpectedDueAt)
			case tc.ExpectedDueAt != nil && !tc.ExpectedDueAt.Equal(*task.DueAt()):
				t.Errorf("task.DueAt(): expected '%v', got '%v'", tc.ExpectedDueAt, task.DueAt())
			}

			stored, err := store.GetTaskByID(ctx, "alice", task.ID())
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.ExpectedDescription, stored.Description(); e != g {
				t.Errorf("stored.Description(): expected '%v', got '%v'", e, g)
			}
		})
	}
}

func TestTaskManagerAddTaskReturnsStoredTask(t *testing.T) {
	storedAt := testNow.Add(42 * time.Second)
	store := newFakeTaskStore(fixedClock(storedAt))
	manager := NewTaskManager(store, WithTaskManagerClock(fixedClock(testNow)))

	task, err := manager.AddTask(context.Background(), "alice", "Water plants in 5 minutes")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := storedAt, task.CreatedAt(); !e.Equal(g) {
		t.Errorf("task.CreatedAt(): expected '%v', got '%v'", e, g)
	}

	if task.DueAt() == nil {
		t.Fatalf("task.DueAt(): expected '%v', got nil", testNow.Add(5*time.Minute))
	}

	if e, g := testNow.Add(5*time.Minute), *task.DueAt(); !e.Equal(g) {
		t.Errorf("task.DueAt(): expected '%v', got '%v'", e, g)
	}
}

func TestTaskManagerEditTask(t *testing.T) {
	manager, store := newTestTaskManager()
	ctx := context.Background()

	task, err := manager.AddTask(ctx, "alice", "Call mom at 18:30")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// Time-only input is rejected and leaves the task untouched
	if _, err := manager.EditTask(ctx, "alice", task.ID(), "at 9:00"); !errors.Is(err, port.ErrValidation) {
		t.Fatalf("err: expected '%v', got '%v'", port.ErrValidation, err)
	}

	stored, err := store.GetTaskByID(ctx, "alice", task.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "Call mom", stored.Description(); e != g {
		t.Errorf("stored.Description(): expected '%v', got '%v'", e, g)
	}

	if stored.DueAt() == nil {
		t.Fatalf("stored.DueAt(): expected a reminder, got nil")
	}

	// Input without time phrase clears the reminder
	updated, err := manager.EditTask(ctx, "alice", task.ID(), "Call dad")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "Call dad", updated.Description(); e != g {
		t.Errorf("updated.Description(): expected '%v', got '%v'", e, g)
	}

	if model.HasReminder(updated) {
		t.Errorf("updated.DueAt(): expected nil, got '%v'", updated.DueAt())
	}

	stored, err = store.GetTaskByID(ctx, "alice", task.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if model.HasReminder(stored) {
		t.Errorf("stored.DueAt(): expected nil, got '%v'", stored.DueAt())
	}

	// Tasks of other users cannot be edited
	if _, err := manager.EditTask(ctx, "bob", task.ID(), "Hijack"); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("err: expected '%v', got '%v'", port.ErrNotFound, err)
	}

	if _, err := manager.EditTask(ctx, "alice", 999, "Ghost"); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("err: expected '%v', got '%v'", port.ErrNotFound, err)
	}
}

func TestTaskManagerRemoveTask(t *testing.T) {
	manager, store := newTestTaskManager()
	ctx := context.Background()

	first, err := manager.AddTask(ctx, "alice", "Buy milk")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	second, err := manager.AddTask(ctx, "alice", "Buy bread")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := manager.CompleteTask(ctx, "bob", first.ID()); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("err: expected '%v', got '%v'", port.ErrNotFound, err)
	}

	if err := manager.CompleteTask(ctx, "alice", first.ID()); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := manager.CompleteTask(ctx, "alice", first.ID()); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("err: expected '%v', got '%v'", port.ErrNotFound, err)
	}

	if err := manager.DeleteTask(ctx, "alice", second.ID()); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 0, store.count(); e != g {
		t.Errorf("store.count(): expected '%v', got '%v'", e, g)
	}
}

func TestTaskManagerListTasks(t *testing.T) {
	manager, _ := newTestTaskManager()
	ctx := context.Background()

	for _, text := range []string{"One", "Two", "Three"} {
		if _, err := manager.AddTask(ctx, "alice", text); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	if _, err := manager.AddTask(ctx, "bob", "Other"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	tasks, err := manager.ListTasks(ctx, "alice")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 3, len(tasks); e != g {
		t.Fatalf("len(tasks): expected '%v', got '%v'", e, g)
	}

	for i, e := range []string{"One", "Two", "Three"} {
		if g := tasks[i].Description(); e != g {
			t.Errorf("tasks[%d].Description(): expected '%v', got '%v'", i, e, g)
		}
	}
}

func TestTaskManagerStorageError(t *testing.T) {
	manager, store := newTestTaskManager()
	store.failWith = port.ErrStorage

	if _, err := manager.AddTask(context.Background(), "alice", "Buy milk"); !errors.Is(err, port.ErrStorage) {
		t.Errorf("err: expected '%v', got '%v'", port.ErrStorage, err)
	}
}
