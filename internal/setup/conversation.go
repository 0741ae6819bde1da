package setup

import (
	"context"

	"github.com/bornholm/remindme/internal/config"
	"github.com/bornholm/remindme/internal/core/service"
	"github.com/pkg/errors"
)

var getConversationFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.Conversation, error) {
	sessions, err := getSessionStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create session store from config")
	}

	tasks, err := getTaskManagerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create task manager from config")
	}

	return service.NewConversation(sessions, tasks), nil
})
