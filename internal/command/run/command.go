package run

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/bornholm/remindme/internal/command/common"
	"github.com/bornholm/remindme/internal/setup"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the telegram bot, the reminder sweeper and the ops http server",
		Action: func(cCtx *cli.Context) error {
			conf, err := common.LoadConfig(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			ctx, cancel := signal.NotifyContext(cCtx.Context, os.Interrupt)
			defer cancel()

			bot, err := setup.NewBotFromConfig(ctx, conf)
			if err != nil {
				return errors.Wrap(err, "could not setup bot")
			}

			defer setup.FlushErrorReporter(2 * time.Second)

			slog.InfoContext(ctx, "starting bot", slog.Bool("http", conf.HTTP.Enabled), slog.String("address", conf.HTTP.Address))
			slog.InfoContext(ctx, "use ctrl+c to interrupt")

			if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return errors.Wrap(err, "could not run bot")
			}

			return nil
		},
	}
}
