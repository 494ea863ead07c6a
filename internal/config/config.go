package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"briscola-game/internal/cpu"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Environment keys.
const (
	EnvAddr       = "BRISCOLA_ADDR"
	EnvStaticDir  = "BRISCOLA_STATIC_DIR"
	EnvDifficulty = "BRISCOLA_DIFFICULTY"
	EnvLogLevel   = "BRISCOLA_LOG_LEVEL"
	EnvLogFormat  = "BRISCOLA_LOG_FORMAT"
)

// Config holds the settings shared by the command line tools.
type Config struct {
	Addr       string       // listen address of the websocket server
	StaticDir  string       // directory served at /
	Difficulty cpu.Level    // default CPU level
	LogLevel   logrus.Level // minimum log level
	LogFormat  string       // "text" or "json"
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:       ":8080",
		StaticDir:  "web/static",
		Difficulty: cpu.LevelHard,
		LogLevel:   logrus.InfoLevel,
		LogFormat:  "text",
	}
}

var (
	cfg      Config
	loadOnce sync.Once
	loadErr  error
)

// Load reads an optional .env file and the environment, once per process.
func Load() (Config, error) {
	loadOnce.Do(func() {
		// A missing .env file is fine, the environment alone is enough.
		_ = godotenv.Load()
		cfg, loadErr = FromEnv(os.Getenv)
	})
	return cfg, loadErr
}

// FromEnv builds a Config from a lookup function, starting from Default.
func FromEnv(getenv func(string) string) (Config, error) {
	c := Default()

	if v := getenv(EnvAddr); v != "" {
		c.Addr = v
	}
	if v := getenv(EnvStaticDir); v != "" {
		c.StaticDir = v
	}
	if v := getenv(EnvDifficulty); v != "" {
		level, err := cpu.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvDifficulty, err)
		}
		c.Difficulty = level
	}
	if v := getenv(EnvLogLevel); v != "" {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		c.LogLevel = level
	}
	if v := getenv(EnvLogFormat); v != "" {
		format := strings.ToLower(v)
		if format != "text" && format != "json" {
			return Config{}, fmt.Errorf("%s: unknown log format %q", EnvLogFormat, v)
		}
		c.LogFormat = format
	}
	return c, nil
}

// NewLogger builds the logrus logger described by the config.
func NewLogger(c Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(c.LogLevel)
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
