package setup

import (
	"context"

	"github.com/bornholm/remindme/internal/config"
	"github.com/bornholm/remindme/internal/core/port"
	"github.com/pkg/errors"
)

var SessionStore = NewRegistry[port.SessionStore]()

var getSessionStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.SessionStore, error) {
	sessionStore, err := SessionStore.From(conf.Session.URI)
	if err != nil {
		return nil, errors.Wrapf(err, "could not retrieve session store for uri '%s'", conf.Session.URI)
	}

	return sessionStore, nil
})
