package memory

import (
	"context"
	"time"

	"github.com/bornholm/remindme/internal/core/model"
	"github.com/bornholm/remindme/internal/core/port"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// SessionStore keeps conversations in process memory. Entries are lost on
// restart and expire after ttl without activity.
type SessionStore struct {
	conversations *expirable.LRU[model.OwnerID, model.Conversation]
}

// ClearConversation implements port.SessionStore.
func (s *SessionStore) ClearConversation(ctx context.Context, owner model.OwnerID) error {
	s.conversations.Remove(owner)
	return nil
}

// GetConversation implements port.SessionStore.
func (s *SessionStore) GetConversation(ctx context.Context, owner model.OwnerID) (model.Conversation, error) {
	conversation, exists := s.conversations.Get(owner)
	if !exists {
		return model.IdleConversation(), nil
	}

	return conversation, nil
}

// SaveConversation implements port.SessionStore.
func (s *SessionStore) SaveConversation(ctx context.Context, owner model.OwnerID, conversation model.Conversation) error {
	if conversation.IsIdle() {
		s.conversations.Remove(owner)
		return nil
	}

	s.conversations.Add(owner, conversation)

	return nil
}

func NewSessionStore(size int, ttl time.Duration) *SessionStore {
	return &SessionStore{
		conversations: expirable.NewLRU[model.OwnerID, model.Conversation](size, nil, ttl),
	}
}

var _ port.SessionStore = &SessionStore{}
