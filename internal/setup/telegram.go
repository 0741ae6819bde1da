package setup

import (
	"context"
	"log/slog"

	"github.com/bornholm/remindme/internal/adapter/telegram"
	"github.com/bornholm/remindme/internal/config"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

var ErrMissingTelegramToken = errors.New("missing telegram bot token")

var getTelegramTransportFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*telegram.Transport, error) {
	if conf.Telegram.Token == "" {
		return nil, errors.WithStack(ErrMissingTelegramToken)
	}

	api, err := tgbotapi.NewBotAPI(conf.Telegram.Token)
	if err != nil {
		return nil, errors.Wrap(err, "could not connect to telegram bot api")
	}

	api.Debug = conf.Telegram.Debug

	slog.InfoContext(ctx, "authorized on telegram", slog.String("bot", api.Self.UserName))

	transport := telegram.NewTransport(api,
		telegram.WithTimeout(conf.Telegram.Timeout),
		telegram.WithRateLimit(conf.Telegram.RateLimit.Interval, conf.Telegram.RateLimit.Burst),
	)

	return transport, nil
})
