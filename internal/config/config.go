package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type Config struct {
	Logger   Logger   `envPrefix:"LOGGER_"`
	HTTP     HTTP     `envPrefix:"HTTP_"`
	Storage  Storage  `envPrefix:"STORAGE_"`
	Session  Session  `envPrefix:"SESSION_"`
	Telegram Telegram `envPrefix:"TELEGRAM_"`
	Reminder Reminder `envPrefix:"REMINDER_"`
	Chat     Chat     `envPrefix:"CHAT_"`
	Sentry   Sentry   `envPrefix:"SENTRY_"`
}

func Parse() (*Config, error) {
	conf, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix: "REMINDME_",
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &conf, nil
}
