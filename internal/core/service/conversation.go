package service

import (
	"context"
	"log/slog"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/remindme/internal/core/model"
	"github.com/bornholm/remindme/internal/core/port"
	"github.com/pkg/errors"
)

type TextOutcome string

const (
	TextOutcomeCreated TextOutcome = "created"
	TextOutcomeUpdated TextOutcome = "updated"
)

type TextResult struct {
	Outcome TextOutcome
	Task    model.Task

	// Implicit is true when the text was received while no conversation was
	// in progress and was treated as a new task
	Implicit bool
}

// Conversation routes free text according to the per-user conversation
// mode held in a port.SessionStore.
type Conversation struct {
	sessions port.SessionStore
	tasks    *TaskManager
}

func NewConversation(sessions port.SessionStore, tasks *TaskManager) *Conversation {
	return &Conversation{
		sessions: sessions,
		tasks:    tasks,
	}
}

// Reset brings the user back to idle, discarding any pending prompt
func (c *Conversation) Reset(ctx context.Context, owner model.OwnerID) error {
	if err := c.sessions.ClearConversation(ctx, owner); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (c *Conversation) Current(ctx context.Context, owner model.OwnerID) (model.Conversation, error) {
	conversation, err := c.sessions.GetConversation(ctx, owner)
	if err != nil {
		return model.Conversation{}, errors.WithStack(err)
	}

	return conversation, nil
}

// StartAddingTask makes the next text message of the user a new task
func (c *Conversation) StartAddingTask(ctx context.Context, owner model.OwnerID) error {
	if err := c.sessions.SaveConversation(ctx, owner, model.AwaitingNewTaskConversation()); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// StartEditingTask makes the next text message of the user the new content
// of the given task. Returns port.ErrNotFound if the user does not own it.
func (c *Conversation) StartEditingTask(ctx context.Context, owner model.OwnerID, taskID model.TaskID) error {
	if _, err := c.tasks.GetTask(ctx, owner, taskID); err != nil {
		return errors.WithStack(err)
	}

	if err := c.sessions.SaveConversation(ctx, owner, model.EditingConversation(taskID)); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// HandleText consumes a free text message. Whatever the outcome, the user
// is idle afterwards.
func (c *Conversation) HandleText(ctx context.Context, owner model.OwnerID, text string) (*TextResult, error) {
	conversation, err := c.sessions.GetConversation(ctx, owner)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer func() {
		if conversation.IsIdle() {
			return
		}

		if err := c.sessions.ClearConversation(ctx, owner); err != nil {
			slog.ErrorContext(ctx, "could not reset conversation", slogx.Error(errors.WithStack(err)))
		}
	}()

	switch conversation.Mode {
	case model.ConversationModeEditing:
		task, err := c.tasks.EditTask(ctx, owner, conversation.TaskID, text)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return &TextResult{Outcome: TextOutcomeUpdated, Task: task}, nil

	case model.ConversationModeAwaitingNewTask:
		task, err := c.tasks.AddTask(ctx, owner, text)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return &TextResult{Outcome: TextOutcomeCreated, Task: task}, nil

	default:
		task, err := c.tasks.AddTask(ctx, owner, text)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return &TextResult{Outcome: TextOutcomeCreated, Task: task, Implicit: true}, nil
	}
}
