package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DBPath        string        `env:"DB_PATH"        envDefault:"rss-watcher.sqlite"`
	FetchInterval time.Duration `env:"FETCH_INTERVAL" envDefault:"2m"`
	HTTPTimeout   time.Duration `env:"HTTP_TIMEOUT"   envDefault:"30s"`
}

func LoadConfig() Config {
	var cfg Config
	env.Must(cfg, env.Parse(&cfg))
	return cfg
}
