package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/yukikurage/study-planner-api/internal/constants"
)

type Config struct {
	ServerAddress string `env:"SERVER_ADDRESS" env-default:":3000"`
	GinMode       string `env:"GIN_MODE" env-default:"debug"`
	LogLevel      string `env:"LOG_LEVEL" env-default:"info"`

	DBDriver    string `env:"DB_DRIVER" env-default:"sqlite"`
	DatabaseURL string `env:"DATABASE_URL" env-default:"studyplanner.db"`

	SessionSecret string `env:"SESSION_SECRET" env-default:"dev-secret"`
	SessionStore  string `env:"SESSION_STORE" env-default:"cookie"`
	RedisHost     string `env:"REDIS_HOST" env-default:"localhost"`
	RedisPort     string `env:"REDIS_PORT" env-default:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	ChatAPIKey    string        `env:"CHAT_API_KEY"`
	ChatBaseURL   string        `env:"CHAT_API_BASE_URL" env-default:"https://api.groq.com/openai/v1"`
	ChatModel     string        `env:"CHAT_MODEL" env-default:"meta-llama/llama-4-scout-17b-16e-instruct"`
	ChatTimeout   time.Duration `env:"CHAT_TIMEOUT" env-default:"30s"`
	ChatRateLimit int           `env:"CHAT_RATE_LIMIT" env-default:"0"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		var pe *os.PathError
		if !errors.As(err, &pe) {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
		log.Println("No .env file found, using environment variables")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations that must not reach production.
func (c *Config) Validate() error {
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unsupported GIN_MODE %q", c.GinMode)
	}

	switch c.DBDriver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.SessionStore {
	case "cookie", "redis":
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.SessionStore)
	}

	if c.IsProduction() && c.SessionSecret == constants.DefaultSessionSecret {
		return errors.New("SESSION_SECRET must be set in release mode")
	}
	if c.ChatRateLimit < 0 {
		return errors.New("CHAT_RATE_LIMIT must not be negative")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
