package setup

import (
	"context"

	"github.com/bornholm/remindme/internal/chat"
	"github.com/bornholm/remindme/internal/config"
	"github.com/bornholm/remindme/internal/core/model"
	"github.com/bornholm/remindme/internal/core/port"
	"github.com/bornholm/remindme/internal/ratelimit"
	"github.com/pkg/errors"
)

func newControllerFromConfig(ctx context.Context, conf *config.Config, messenger port.Messenger) (*chat.Controller, error) {
	tasks, err := getTaskManagerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create task manager from config")
	}

	conversation, err := getConversationFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create conversation from config")
	}

	floodGuard := ratelimit.NewKeyed[model.OwnerID](
		conf.Chat.RateLimit.Interval,
		conf.Chat.RateLimit.Burst,
		conf.Chat.RateLimit.CacheSize,
		conf.Chat.RateLimit.TTL,
	)

	return chat.NewController(messenger, tasks, conversation, chat.WithFloodGuard(floodGuard)), nil
}
