package setup

import (
	"context"

	"github.com/bornholm/remindme/internal/config"
	"github.com/bornholm/remindme/internal/http"
	"github.com/bornholm/remindme/internal/http/handler/health"
	"github.com/bornholm/remindme/internal/http/handler/metrics"
	"github.com/pkg/errors"
)

func NewHTTPServerFromConfig(ctx context.Context, conf *config.Config) (*http.Server, error) {
	db, err := getGormDatabaseFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not open database from config")
	}

	checks := map[string]health.Check{
		"database": func(ctx context.Context) error {
			internalDB, err := db.DB()
			if err != nil {
				return errors.WithStack(err)
			}

			return internalDB.PingContext(ctx)
		},
	}

	options := []http.OptionFunc{
		http.WithAddress(conf.HTTP.Address),
		http.WithMount("/metrics", metrics.NewHandler()),
		http.WithMount("/healthz", health.NewHandler(checks)),
	}

	if conf.HTTP.BasicAuth.Username != "" {
		options = append(options, http.WithBasicAuth(conf.HTTP.BasicAuth.Username, conf.HTTP.BasicAuth.Password))
	}

	server := http.NewServer(options...)

	return server, nil
}
