package config

type HTTP struct {
	Enabled   bool   `env:"ENABLED,expand" envDefault:"true"`
	Address   string `env:"ADDRESS,expand" envDefault:":3003"`
	BasicAuth User   `envPrefix:"BASIC_AUTH_"`
}

type User struct {
	Username string `env:"USERNAME,expand"`
	Password string `env:"PASSWORD,expand"`
}
