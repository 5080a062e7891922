package config

import (
	"errors"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	BackendURL   string        `env:"BACKEND_URL" env-default:"http://localhost:5000"`
	ConsolePort  int           `env:"CONSOLE_PORT" env-default:"8080"`
	SessionFile  string        `env:"SESSION_FILE" env-default:".classroom-session.json"`
	RedisURL     string        `env:"REDIS_URL"`
	PollInterval time.Duration `env:"POLL_INTERVAL" env-default:"30s"`
	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT" env-default:"15s"`
}

func New() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig("./config/.env", &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				return nil, err
			}
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}
