package setup

import (
	"context"

	"github.com/bornholm/remindme/internal/config"
	"github.com/bornholm/remindme/internal/core/service"
	"github.com/pkg/errors"
)

var getTaskManagerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.TaskManager, error) {
	store, err := getTaskStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create task store from config")
	}

	return service.NewTaskManager(store), nil
})

func NewTaskManagerFromConfig(ctx context.Context, conf *config.Config) (*service.TaskManager, error) {
	return getTaskManagerFromConfig(ctx, conf)
}
