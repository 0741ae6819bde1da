package memory

import (
	"net/url"
	"strconv"
	"time"

	"github.com/bornholm/remindme/internal/core/port"
	"github.com/bornholm/remindme/internal/setup"
	"github.com/pkg/errors"
)

func init() {
	setup.SessionStore.Register("memory", func(u *url.URL) (port.SessionStore, error) {
		size := 10000
		if rawValue := u.Query().Get("size"); rawValue != "" {
			v, err := strconv.ParseInt(rawValue, 10, 32)
			if err != nil {
				return nil, errors.Wrapf(err, "could not parse 'size' parameter")
			}
			size = int(v)
		}

		ttl := time.Minute * 30
		if rawValue := u.Query().Get("ttl"); rawValue != "" {
			v, err := time.ParseDuration(rawValue)
			if err != nil {
				return nil, errors.Wrapf(err, "could not parse 'ttl' parameter")
			}
			ttl = v
		}

		return NewSessionStore(size, ttl), nil
	})
}
