package chat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/remindme/internal/core/model"
	"github.com/bornholm/remindme/internal/core/port"
	"github.com/bornholm/remindme/internal/core/service"
	"github.com/bornholm/remindme/internal/metrics"
	"github.com/bornholm/remindme/internal/ratelimit"
	"github.com/bornholm/remindme/internal/timeexpr"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

type Options struct {
	FloodGuard *ratelimit.Keyed[model.OwnerID]
	Clock      func() time.Time
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Clock: time.Now,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

// WithFloodGuard drops the events of users exceeding their rate
func WithFloodGuard(limiter *ratelimit.Keyed[model.OwnerID]) OptionFunc {
	return func(opts *Options) {
		opts.FloodGuard = limiter
	}
}

func WithClock(clock func() time.Time) OptionFunc {
	return func(opts *Options) {
		opts.Clock = clock
	}
}

// Controller turns chat events into task operations and renders their
// outcome through a port.Messenger. It also delivers reminders.
type Controller struct {
	messenger    port.Messenger
	tasks        *service.TaskManager
	conversation *service.Conversation
	floodGuard   *ratelimit.Keyed[model.OwnerID]
	clock        func() time.Time
}

func NewController(messenger port.Messenger, tasks *service.TaskManager, conversation *service.Conversation, funcs ...OptionFunc) *Controller {
	opts := NewOptions(funcs...)
	return &Controller{
		messenger:    messenger,
		tasks:        tasks,
		conversation: conversation,
		floodGuard:   opts.FloodGuard,
		clock:        opts.Clock,
	}
}

// HandleEvent implements port.EventHandler.
func (c *Controller) HandleEvent(ctx context.Context, event port.Event) error {
	ctx = slogx.WithAttrs(ctx, slog.String("userID", string(event.Sender)))

	if c.floodGuard != nil && !c.floodGuard.Allow(event.Sender) {
		countEvent(event.Kind, metrics.StatusThrottled)
		slog.WarnContext(ctx, "dropping event from flooding user", slog.String("kind", string(event.Kind)))

		if event.Kind == port.EventKindCallback {
			c.acknowledge(ctx, event, textSlowDown)
		}

		return nil
	}

	var err error

	switch event.Kind {
	case port.EventKindCommand:
		err = c.handleCommand(ctx, event)
	case port.EventKindCallback:
		err = c.handleCallback(ctx, event)
	case port.EventKindText:
		err = c.handleText(ctx, event)
	default:
		err = errors.Errorf("unexpected event kind '%s'", event.Kind)
	}

	if err != nil {
		countEvent(event.Kind, metrics.StatusFailed)
		return errors.WithStack(err)
	}

	countEvent(event.Kind, metrics.StatusHandled)

	return nil
}

func (c *Controller) handleCommand(ctx context.Context, event port.Event) error {
	switch event.Text {
	case "start":
		if err := c.conversation.Reset(ctx, event.Sender); err != nil {
			return c.fail(ctx, event, errors.WithStack(err))
		}

		return c.send(ctx, event.Sender, port.Message{Text: textWelcome, Menu: mainMenu()})

	case "menu":
		if err := c.conversation.Reset(ctx, event.Sender); err != nil {
			return c.fail(ctx, event, errors.WithStack(err))
		}

		return c.send(ctx, event.Sender, port.Message{Text: textChooseAction, Menu: mainMenu()})

	default:
		return c.send(ctx, event.Sender, port.Message{Text: textUnknownCommand, Menu: backToMainMenu()})
	}
}

func (c *Controller) handleCallback(ctx context.Context, event port.Event) error {
	action, err := ParseAction(event.Action)
	if err != nil {
		slog.WarnContext(ctx, "ignoring callback", slogx.Error(err))
		c.acknowledge(ctx, event, textUnknownAction)
		return nil
	}

	ctx = slogx.WithAttrs(ctx, slog.String("action", action.String()))

	var notice string

	switch action.Kind {
	case ActionBack:
		if err := c.conversation.Reset(ctx, event.Sender); err != nil {
			return c.fail(ctx, event, errors.WithStack(err))
		}

		err = c.reply(ctx, event, port.Message{Text: textChooseAction, Menu: mainMenu()})

	case ActionMyTasks:
		err = c.showTasks(ctx, event)

	case ActionAddTask:
		if err := c.conversation.StartAddingTask(ctx, event.Sender); err != nil {
			return c.fail(ctx, event, errors.WithStack(err))
		}

		err = c.reply(ctx, event, port.Message{Text: textAddPrompt})

	case ActionShowTask:
		notice, err = c.showTask(ctx, event, action.TaskID)

	case ActionEditTask:
		notice, err = c.startEditing(ctx, event, action.TaskID)

	case ActionDeleteTask:
		err = c.reply(ctx, event, port.Message{Text: textConfirmDelete, Menu: confirmDeleteMenu(action.TaskID)})

	case ActionConfirmDelete:
		notice, err = c.removeTask(ctx, event, action.TaskID, removal{
			remove:     c.tasks.DeleteTask,
			done:       textTaskDeleted,
			gone:       textAlreadyRemoved,
			goneNotice: textAlreadyRemoved,
		})

	case ActionDoneTask:
		// Reminders are removed once delivered, so "I did it!" usually
		// targets a task that is already gone
		notice, err = c.removeTask(ctx, event, action.TaskID, removal{
			remove: c.tasks.CompleteTask,
			done:   textTaskDone,
			gone:   textDoneAlreadyRemoved,
		})
	}

	if err != nil {
		return c.fail(ctx, event, err)
	}

	c.acknowledge(ctx, event, notice)

	return nil
}

func (c *Controller) showTasks(ctx context.Context, event port.Event) error {
	tasks, err := c.tasks.ListTasks(ctx, event.Sender)
	if err != nil {
		return errors.WithStack(err)
	}

	if len(tasks) == 0 {
		return c.reply(ctx, event, port.Message{Text: textNoTasks, Menu: backToMainMenu()})
	}

	return c.reply(ctx, event, port.Message{Text: textTaskList, Menu: tasksMenu(tasks)})
}

func (c *Controller) showTask(ctx context.Context, event port.Event, taskID model.TaskID) (string, error) {
	task, err := c.tasks.GetTask(ctx, event.Sender, taskID)
	if errors.Is(err, port.ErrNotFound) {
		return textTaskNotFound, nil
	}
	if err != nil {
		return "", errors.WithStack(err)
	}

	message := port.Message{
		Text: textTaskDetail(task.Description(), c.localize(task.DueAt()), c.clock()),
		Menu: taskMenu(task.ID()),
	}

	return "", c.reply(ctx, event, message)
}

func (c *Controller) startEditing(ctx context.Context, event port.Event, taskID model.TaskID) (string, error) {
	err := c.conversation.StartEditingTask(ctx, event.Sender, taskID)
	if errors.Is(err, port.ErrNotFound) {
		return textTaskNotFound, nil
	}
	if err != nil {
		return "", errors.WithStack(err)
	}

	return "", c.reply(ctx, event, port.Message{Text: textEditPrompt})
}

type removal struct {
	remove func(context.Context, model.OwnerID, model.TaskID) error

	// Replies once the task is removed, or when it was already gone
	done string
	gone string

	// Callback notice when the task was already gone
	goneNotice string
}

func (c *Controller) removeTask(ctx context.Context, event port.Event, taskID model.TaskID, r removal) (string, error) {
	err := r.remove(ctx, event.Sender, taskID)
	if errors.Is(err, port.ErrNotFound) {
		return r.goneNotice, c.reply(ctx, event, port.Message{Text: r.gone, Menu: backToMainMenu()})
	}
	if err != nil {
		return "", errors.WithStack(err)
	}

	return "", c.reply(ctx, event, port.Message{Text: r.done, Menu: backToMainMenu()})
}

func (c *Controller) handleText(ctx context.Context, event port.Event) error {
	result, err := c.conversation.HandleText(ctx, event.Sender, event.Text)
	if err != nil {
		var text string

		switch {
		case errors.Is(err, service.ErrEmptyDescription):
			text = textEmptyDescription
		case errors.Is(err, timeexpr.ErrInvalidTime):
			text = textInvalidTime
		case errors.Is(err, port.ErrNotFound):
			text = textAlreadyRemoved
		default:
			return c.fail(ctx, event, errors.WithStack(err))
		}

		return c.send(ctx, event.Sender, port.Message{Text: text, Menu: backToMainMenu()})
	}

	var text string

	switch result.Outcome {
	case service.TextOutcomeUpdated:
		text = textUpdated(result.Task.Description(), c.localize(result.Task.DueAt()))
	default:
		text = textAdded(result.Task.Description(), c.localize(result.Task.DueAt()), result.Implicit)
	}

	return c.send(ctx, event.Sender, port.Message{Text: text, Menu: backToMainMenu()})
}

// Notify implements port.Notifier.
func (c *Controller) Notify(ctx context.Context, task model.Task) error {
	message := port.Message{
		Text: textReminder(task.Description()),
		Menu: reminderMenu(task.ID()),
	}

	if _, err := c.messenger.Send(ctx, task.Owner(), message); err != nil {
		return errors.WithStack(fmt.Errorf("%w: %w", port.ErrDelivery, err))
	}

	return nil
}

// fail tells the user something went wrong and returns err
func (c *Controller) fail(ctx context.Context, event port.Event, err error) error {
	if event.Kind == port.EventKindCallback {
		c.acknowledge(ctx, event, textTemporaryFailure)
	} else if sendErr := c.send(ctx, event.Sender, port.Message{Text: textTemporaryFailure, Menu: backToMainMenu()}); sendErr != nil {
		slog.WarnContext(ctx, "could not send failure notice", slogx.Error(sendErr))
	}

	return errors.WithStack(err)
}

func (c *Controller) send(ctx context.Context, recipient model.OwnerID, message port.Message) error {
	if _, err := c.messenger.Send(ctx, recipient, message); err != nil {
		return errors.Wrap(err, "could not send message")
	}

	return nil
}

// reply replaces the message the selected menu belongs to, or sends a new
// one when the event does not reference any
func (c *Controller) reply(ctx context.Context, event port.Event, message port.Message) error {
	if event.Message == nil {
		return c.send(ctx, event.Sender, message)
	}

	if err := c.messenger.Edit(ctx, *event.Message, message); err != nil {
		return errors.Wrap(err, "could not edit message")
	}

	return nil
}

func (c *Controller) acknowledge(ctx context.Context, event port.Event, notice string) {
	if event.CallbackID == "" {
		return
	}

	if err := c.messenger.Acknowledge(ctx, event.CallbackID, notice); err != nil {
		slog.WarnContext(ctx, "could not acknowledge callback", slogx.Error(errors.WithStack(err)))
	}
}

// localize expresses an instant in the location of the controller clock
func (c *Controller) localize(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	local := t.In(c.clock().Location())

	return &local
}

func countEvent(kind port.EventKind, status string) {
	metrics.ChatEvents.With(prometheus.Labels{
		metrics.LabelKind:   string(kind),
		metrics.LabelStatus: status,
	}).Inc()
}

var (
	_ port.EventHandler = &Controller{}
	_ port.Notifier     = &Controller{}
)
