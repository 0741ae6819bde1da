package config

import "time"

type Telegram struct {
	Token string `env:"TOKEN,expand"`

	// Long polling timeout, in seconds
	Timeout int  `env:"TIMEOUT,expand" envDefault:"30"`
	Debug   bool `env:"DEBUG,expand" envDefault:"false"`

	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`
}

type RateLimit struct {
	Interval time.Duration `env:"INTERVAL,expand" envDefault:"40ms"`
	Burst    int           `env:"BURST,expand" envDefault:"25"`
}
