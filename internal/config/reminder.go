package config

import "time"

type Reminder struct {
	Interval            time.Duration `env:"INTERVAL,expand" envDefault:"60s"`
	MaxDeliveryAttempts int           `env:"MAX_DELIVERY_ATTEMPTS,expand" envDefault:"3"`
}
