package setup

import (
	"context"
	"io"

	"github.com/bornholm/remindme/internal/adapter/console"
	"github.com/bornholm/remindme/internal/bot"
	"github.com/bornholm/remindme/internal/config"
	"github.com/bornholm/remindme/internal/core/model"
	"github.com/bornholm/remindme/internal/core/port"
	"github.com/pkg/errors"
)

type chatTransport interface {
	port.Messenger
	port.Listener
}

// NewBotFromConfig creates a bot talking to Telegram users
func NewBotFromConfig(ctx context.Context, conf *config.Config) (*bot.Bot, error) {
	transport, err := getTelegramTransportFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create telegram transport from config")
	}

	return newBotFromConfig(ctx, conf, transport, conf.HTTP.Enabled)
}

// NewConsoleBotFromConfig creates a bot talking to a single local user over
// the given streams
func NewConsoleBotFromConfig(ctx context.Context, conf *config.Config, in io.Reader, out io.Writer, owner model.OwnerID) (*bot.Bot, error) {
	return newBotFromConfig(ctx, conf, console.NewTransport(in, out, owner), false)
}

func newBotFromConfig(ctx context.Context, conf *config.Config, transport chatTransport, withServer bool) (*bot.Bot, error) {
	controller, err := newControllerFromConfig(ctx, conf, transport)
	if err != nil {
		return nil, errors.Wrap(err, "could not create chat controller from config")
	}

	sweeper, err := newSweeperFromConfig(ctx, conf, controller)
	if err != nil {
		return nil, errors.Wrap(err, "could not create reminder sweeper from config")
	}

	reportError, err := getErrorReporterFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create error reporter from config")
	}

	options := []bot.OptionFunc{
		bot.WithErrorReporter(reportError),
	}

	if withServer {
		server, err := NewHTTPServerFromConfig(ctx, conf)
		if err != nil {
			return nil, errors.Wrap(err, "could not create http server from config")
		}

		options = append(options, bot.WithRunner("http server", server))
	}

	return bot.New(transport, controller, sweeper, options...), nil
}
