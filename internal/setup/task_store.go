package setup

import (
	"context"

	gormAdapter "github.com/bornholm/remindme/internal/adapter/gorm"
	"github.com/bornholm/remindme/internal/config"
	"github.com/bornholm/remindme/internal/core/port"
	"github.com/pkg/errors"
)

var getTaskStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.TaskStore, error) {
	db, err := getGormDatabaseFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not open database from config")
	}

	return gormAdapter.NewStore(db), nil
})
