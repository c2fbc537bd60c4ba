package config

import (
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration.
type Config struct {
	APIBaseURL string `envconfig:"SCHOOL_API_URL" default:"https://evaaz-poll-hqzi.vercel.app"`
	StateDir   string `envconfig:"SCHOOLCTL_STATE_DIR"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from environment variables. The state
// directory defaults to schoolctl/ under the user config dir.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.StateDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		cfg.StateDir = filepath.Join(base, "schoolctl")
	}
	return &cfg, nil
}

// Init initializes logging from the loaded configuration.
func (c *Config) Init() {
	InitLogger()
	SetLogLevel(c.Level())

	log.Debug().
		Str("api_base_url", c.APIBaseURL).
		Str("state_dir", c.StateDir).
		Str("log_level", c.Level().String()).
		Msg("Application configuration loaded")
}

// Level parses the configured log level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	switch c.LogLevel {
	case "debug", "DEBUG":
		return zerolog.DebugLevel
	case "info", "INFO":
		return zerolog.InfoLevel
	case "warn", "WARN":
		return zerolog.WarnLevel
	case "error", "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
