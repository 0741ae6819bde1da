package common

import (
	"log/slog"

	"github.com/bornholm/remindme/internal/config"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// LoadConfig parses the environment configuration. The log level given on
// the command line takes precedence over the configured one.
func LoadConfig(cCtx *cli.Context) (*config.Config, error) {
	conf, err := config.Parse()
	if err != nil {
		return nil, errors.Wrap(err, "could not parse config")
	}

	if cCtx.IsSet(FlagLogLevel) {
		level, err := ParseLogLevel(cCtx.String(FlagLogLevel))
		if err != nil {
			return nil, errors.WithStack(err)
		}

		conf.Logger.Level = level
	}

	SetupLogger(conf.Logger.Level)

	slog.DebugContext(cCtx.Context, "using configuration", slog.Any("config", redact(conf)))

	return conf, nil
}

func redact(conf *config.Config) config.Config {
	redacted := *conf

	if redacted.Telegram.Token != "" {
		redacted.Telegram.Token = "***"
	}

	if redacted.HTTP.BasicAuth.Password != "" {
		redacted.HTTP.BasicAuth.Password = "***"
	}

	if redacted.Sentry.DSN != "" {
		redacted.Sentry.DSN = "***"
	}

	return redacted
}
