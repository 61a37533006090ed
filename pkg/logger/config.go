package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

// Config holds logger configuration populated from the environment.
type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development" yaml:"env"`
	Service string `env:"APP_NAME" envDefault:"sessiond" yaml:"service"`
	Level   string `env:"LOG_LEVEL" envDefault:"" yaml:"level"`   // overrides the environment default when set
	Format  string `env:"LOG_FORMAT" envDefault:"" yaml:"format"` // overrides the environment default when set
}

// NewFromConfig creates a logger from cfg. Environment defaults are applied
// first; explicit level and format values win over them.
func NewFromConfig(cfg Config, opts ...Option) (*slog.Logger, error) {
	configOpts := []Option{WithEnvironment(cfg.Env, cfg.Service)}

	if cfg.Level != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		configOpts = append(configOpts, WithLevel(lvl))
	}

	if cfg.Format != "" {
		f := Format(strings.ToLower(cfg.Format))
		if f != FormatJSON && f != FormatText {
			return nil, fmt.Errorf("invalid log format %q: must be %q or %q", cfg.Format, FormatJSON, FormatText)
		}
		configOpts = append(configOpts, WithFormat(f))
	}

	configOpts = append(configOpts, opts...)
	return New(configOpts...), nil
}
