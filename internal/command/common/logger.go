package common

import (
	"log/slog"
	"os"
	"strings"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

func ParseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(strings.ToUpper(raw))); err != nil {
		return level, errors.Wrapf(err, "invalid log level '%s'", raw)
	}

	return level, nil
}

func SetupLogger(level slog.Level) {
	logger := slog.New(slogx.ContextHandler{
		Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		}),
	})

	slog.SetDefault(logger)
}
