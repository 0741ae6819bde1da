package config

type Session struct {
	URI string `env:"URI,expand" envDefault:"memory://?size=10000&ttl=30m"`
}
