package setup

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/remindme/internal/build"
	"github.com/bornholm/remindme/internal/config"
	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
)

type ErrorReporter func(ctx context.Context, err error)

var getErrorReporterFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (ErrorReporter, error) {
	if conf.Sentry.DSN == "" {
		return func(ctx context.Context, err error) {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         conf.Sentry.DSN,
		Environment: conf.Sentry.Environment,
		Release:     build.Version,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not initialize sentry client")
	}

	slog.DebugContext(ctx, "sentry error reporting enabled", slog.String("environment", conf.Sentry.Environment))

	return func(ctx context.Context, err error) {
		hub := sentry.GetHubFromContext(ctx)
		if hub == nil {
			hub = sentry.CurrentHub()
		}

		hub.CaptureException(err)
	}, nil
})

// FlushErrorReporter waits for buffered error reports to be sent
func FlushErrorReporter(timeout time.Duration) {
	sentry.Flush(timeout)
}
