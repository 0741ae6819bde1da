package port

import (
	"context"

	"github.com/bornholm/remindme/internal/core/model"
)

type Button struct {
	Label  string
	Action string
}

// Menu is a list of button rows attached to a message
type Menu [][]Button

type Message struct {
	Text string
	Menu Menu
}

// MessageRef points to a previously sent message so it can be edited
type MessageRef struct {
	Recipient model.OwnerID
	ID        string
}

type Messenger interface {
	Send(ctx context.Context, recipient model.OwnerID, message Message) (*MessageRef, error)
	Edit(ctx context.Context, ref MessageRef, message Message) error
	Acknowledge(ctx context.Context, callbackID string, notice string) error
}

type EventKind string

const (
	EventKindCommand  EventKind = "command"
	EventKindCallback EventKind = "callback"
	EventKindText     EventKind = "text"
)

type Event struct {
	Kind   EventKind
	Sender model.OwnerID

	// Text holds the command name (without leading slash) for commands and
	// the raw user input for text events
	Text string

	// Action holds the callback data of a menu selection
	Action string

	CallbackID string

	// Message references the message the selected menu was attached to
	Message *MessageRef
}

type EventHandler interface {
	HandleEvent(ctx context.Context, event Event) error
}

type EventHandlerFunc func(ctx context.Context, event Event) error

func (f EventHandlerFunc) HandleEvent(ctx context.Context, event Event) error {
	return f(ctx, event)
}

type Listener interface {
	Listen(ctx context.Context, handler EventHandler) error
}

// Notifier delivers the reminder of a due task to its owner
type Notifier interface {
	Notify(ctx context.Context, task model.Task) error
}

type NotifierFunc func(ctx context.Context, task model.Task) error

func (f NotifierFunc) Notify(ctx context.Context, task model.Task) error {
	return f(ctx, task)
}
