package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/goliatone/go-strings/pkg/catalog"
)

// Config holds environment defaults. Command-line flags override every field.
type Config struct {
	Dir       string   `env:"STRS_DIR"`
	Domain    string   `env:"STRS_DOMAIN" envDefault:"app"`
	Locales   []string `env:"STRS_LOCALES" envSeparator:","`
	Seed      uint64   `env:"STRS_SEED"`
	LogLevel  string   `env:"STRS_LOG_LEVEL" envDefault:"warn"`
	LogFormat string   `env:"STRS_LOG_FORMAT" envDefault:"text"`

	Redis catalog.RedisConfig
}

// LoadConfig loads the optional dotenv files (".env" when none are given)
// and parses the environment into a Config.
func LoadConfig(files ...string) (Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load(files...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("cli: parse environment: %w", err)
	}
	return cfg, nil
}
