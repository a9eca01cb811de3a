package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DBDriver       string `env:"DB_DRIVER" envDefault:"mysql"`
	DBURL          string `env:"DB_URL" envDefault:"taskuser:taskpassword@tcp(localhost:3306)/ctrl_alt_del?charset=utf8mb4&parseTime=True&loc=Local"`
	DBLogLevel     string `env:"DB_LOG_LEVEL" envDefault:"warn"`
	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	MailFrom       string `env:"MAIL_FROM" envDefault:"no-reply@ctrl-alt-del.com"`
	JWTSecret      string `env:"JWT_TOKEN,required,notEmpty"`
	Port           string `env:"PORT" envDefault:"3000"`
	GinMode        string `env:"GIN_MODE" envDefault:"debug"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
