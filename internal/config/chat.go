package config

import "time"

type Chat struct {
	RateLimit ChatRateLimit `envPrefix:"RATE_LIMIT_"`
}

type ChatRateLimit struct {
	Interval  time.Duration `env:"INTERVAL,expand" envDefault:"500ms"`
	Burst     int           `env:"BURST,expand" envDefault:"5"`
	CacheSize int           `env:"CACHE_SIZE,expand" envDefault:"10000"`
	TTL       time.Duration `env:"TTL,expand" envDefault:"10m"`
}
