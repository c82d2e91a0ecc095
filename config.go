package reactive

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config is the environment configuration of a runtime.
type Config struct {
	LogLevel    string `env:"REACTIVE_LOG_LEVEL" envDefault:"info"`
	SettleLimit int    `env:"REACTIVE_SETTLE_LIMIT" envDefault:"100"`
	Debug       bool   `env:"REACTIVE_DEBUG" envDefault:"false"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("parse log level %q: %w", c.LogLevel, err)
	}

	return level, nil
}

// Options turns the configuration into runtime options, logging text to w.
func (c Config) Options(w io.Writer) ([]Option, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))

	return []Option{
		WithLogger(logger),
		WithSettleLimit(c.SettleLimit),
		WithDebug(c.Debug),
	}, nil
}
