package command

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/bornholm/remindme/internal/build"
	"github.com/bornholm/remindme/internal/command/common"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Main(name string, usage string, commands ...*cli.Command) {
	app := &cli.App{
		Name:     name,
		Usage:    usage,
		Commands: commands,
		Version:  build.LongVersion,
		Before: func(ctx *cli.Context) error {
			workdir := ctx.String(common.FlagWorkdir)
			// Switch to new working directory if defined
			if workdir != "" {
				if err := os.Chdir(workdir); err != nil {
					return errors.Wrap(err, "could not change working directory")
				}
			}

			level, err := common.ParseLogLevel(ctx.String(common.FlagLogLevel))
			if err != nil {
				return errors.WithStack(err)
			}

			common.SetupLogger(level)

			return nil
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    common.FlagDebug,
				Value:   false,
				EnvVars: []string{"REMINDME_CLI_DEBUG"},
				Usage:   "Toggle debug mode",
			},
			&cli.StringFlag{
				Name:    common.FlagWorkdir,
				Value:   "",
				EnvVars: []string{"REMINDME_CLI_WORKDIR"},
				Usage:   "The working directory",
			},
			&cli.StringFlag{
				Name:    common.FlagLogLevel,
				EnvVars: []string{"REMINDME_CLI_LOG_LEVEL"},
				Usage:   "Set logging level (debug, info, warn, error), overrides REMINDME_LOGGER_LEVEL",
				Value:   "info",
			},
		},
	}

	app.ExitErrHandler = func(ctx *cli.Context, err error) {
		if err == nil {
			return
		}

		debug := ctx.Bool(common.FlagDebug)

		if !debug {
			slog.ErrorContext(ctx.Context, err.Error())
		} else {
			slog.ErrorContext(ctx.Context, fmt.Sprintf("%+v", err))
		}
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

