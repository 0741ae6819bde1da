package setup

import (
	"context"

	"github.com/bornholm/remindme/internal/config"
	"github.com/bornholm/remindme/internal/core/port"
	"github.com/bornholm/remindme/internal/core/service"
	"github.com/pkg/errors"
)

func newSweeperFromConfig(ctx context.Context, conf *config.Config, notifier port.Notifier) (*service.Sweeper, error) {
	if conf.Reminder.Interval <= 0 {
		return nil, errors.Wrapf(service.ErrInvalidSweepInterval, "invalid reminder interval '%s'", conf.Reminder.Interval)
	}

	store, err := getTaskStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create task store from config")
	}

	reportError, err := getErrorReporterFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create error reporter from config")
	}

	sweeper := service.NewSweeper(store, notifier,
		service.WithSweeperInterval(conf.Reminder.Interval),
		service.WithSweeperMaxDeliveryAttempts(conf.Reminder.MaxDeliveryAttempts),
		service.WithSweeperErrorReporter(reportError),
	)

	return sweeper, nil
}
