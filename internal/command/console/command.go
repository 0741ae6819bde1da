package console

import (
	"context"
	"os"
	"os/signal"

	"github.com/bornholm/remindme/internal/command/common"
	"github.com/bornholm/remindme/internal/core/model"
	"github.com/bornholm/remindme/internal/setup"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const flagOwner = "owner"

func Command() *cli.Command {
	return &cli.Command{
		Name:  "console",
		Usage: "Chat with the bot from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagOwner,
				Aliases: []string{"o"},
				Value:   "console",
				Usage:   "Identifier of the local user owning the tasks",
			},
		},
		Action: func(cCtx *cli.Context) error {
			conf, err := common.LoadConfig(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			ctx, cancel := signal.NotifyContext(cCtx.Context, os.Interrupt)
			defer cancel()

			owner := model.OwnerID(cCtx.String(flagOwner))

			bot, err := setup.NewConsoleBotFromConfig(ctx, conf, os.Stdin, os.Stdout, owner)
			if err != nil {
				return errors.Wrap(err, "could not setup console bot")
			}

			if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return errors.Wrap(err, "could not run console bot")
			}

			return nil
		},
	}
}
