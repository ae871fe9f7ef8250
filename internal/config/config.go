// Package config loads the server settings from a YAML file or the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all server settings.
type Config struct {
	Env        string `yaml:"env" env:"APP_ENV" env-default:"local"`
	DBPath     string `yaml:"db_path" env:"DB_PATH" env-default:"./data/cardplanner.db"`
	LogLevel   string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	HTTPServer `yaml:"http_server"`
	JWT        `yaml:"jwt"`
	Redis      `yaml:"redis"`
	RateLimit  `yaml:"rate_limit"`
}

// HTTPServer configures the listener.
type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	ReadTimeout time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// JWT configures token signing.
type JWT struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
	TTL    time.Duration `yaml:"ttl" env:"JWT_TTL" env-default:"24h"`
}

// Redis configures the plan cache. An empty Addr disables caching.
type Redis struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	PlanTTL  time.Duration `yaml:"plan_ttl" env:"PLAN_CACHE_TTL" env-default:"10m"`
}

// RateLimit configures per-user request limits. RPS 0 disables limiting.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env:"RATE_LIMIT_RPS" env-default:"0"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"20"`
}

// Load reads an optional .env file, then the YAML file named by CONFIG_PATH
// when set, with environment variables taking precedence. Without
// CONFIG_PATH only the environment is read.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read environment: %w", err)
	}

	if cfg.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET must not be empty")
	}
	if cfg.RateLimit.RPS < 0 {
		return nil, errors.New("RATE_LIMIT_RPS must not be negative")
	}
	return &cfg, nil
}

// MustLoad is Load for main packages: it exits on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}
	return cfg
}
