package port

import (
	"context"

	"github.com/bornholm/remindme/internal/core/model"
)

type SessionStore interface {
	// GetConversation returns the current conversation of the user, or an
	// idle conversation if none is in progress
	GetConversation(ctx context.Context, owner model.OwnerID) (model.Conversation, error)

	// SaveConversation stores the conversation of the user. Saving an idle
	// conversation is equivalent to ClearConversation.
	SaveConversation(ctx context.Context, owner model.OwnerID, conversation model.Conversation) error

	// ClearConversation resets the user to idle
	ClearConversation(ctx context.Context, owner model.OwnerID) error
}
