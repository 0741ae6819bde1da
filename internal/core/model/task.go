package model

import (
	"strconv"
	"time"
)

type TaskID int64

func (id TaskID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func ParseTaskID(raw string) (TaskID, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}

	return TaskID(id), nil
}

// OwnerID identifies the chat user owning a task. For private chats it is
// also the address reminders are delivered to.
type OwnerID string

type Task interface {
	WithID[TaskID]
	WithOwner
	WithLifecycle

	Description() string

	// DueAt returns the instant the reminder should fire, or nil if no
	// reminder was requested.
	DueAt() *time.Time

	// DeliveryAttempts returns the number of failed deliveries of the
	// current reminder.
	DeliveryAttempts() int
}

func HasReminder(t Task) bool {
	return t.DueAt() != nil
}

type BaseTask struct {
	id               TaskID
	owner            OwnerID
	description      string
	createdAt        time.Time
	dueAt            *time.Time
	deliveryAttempts int
}

// CreatedAt implements Task.
func (t *BaseTask) CreatedAt() time.Time {
	return t.createdAt
}

// DeliveryAttempts implements Task.
func (t *BaseTask) DeliveryAttempts() int {
	return t.deliveryAttempts
}

// Description implements Task.
func (t *BaseTask) Description() string {
	return t.description
}

// DueAt implements Task.
func (t *BaseTask) DueAt() *time.Time {
	return t.dueAt
}

// ID implements Task.
func (t *BaseTask) ID() TaskID {
	return t.id
}

// Owner implements Task.
func (t *BaseTask) Owner() OwnerID {
	return t.owner
}

var _ Task = &BaseTask{}

func NewTask(id TaskID, owner OwnerID, description string, createdAt time.Time, dueAt *time.Time, deliveryAttempts int) *BaseTask {
	return &BaseTask{
		id:               id,
		owner:            owner,
		description:      description,
		createdAt:        createdAt,
		dueAt:            dueAt,
		deliveryAttempts: deliveryAttempts,
	}
}
