package session

import (
	"errors"
	"time"

	"github.com/dmitrymomot/workersession/pkg/cookie"
)

const (
	DefaultCookieName      = "sid"
	DefaultMaxLifetime     = 24 * time.Minute
	DefaultCleanupInterval = 5 * time.Minute
)

// Config holds session configuration
type Config struct {
	// CookieName is the name of the session cookie (default: "sid")
	CookieName string `env:"SESSION_NAME" envDefault:"sid" yaml:"name"`

	// MaxLifetime is how long the store keeps an idle session
	MaxLifetime time.Duration `env:"SESSION_MAX_LIFETIME" envDefault:"24m" yaml:"max_lifetime"`

	StrictMode bool `env:"SESSION_STRICT_MODE" envDefault:"true" yaml:"strict_mode"`

	// CleanupInterval for expired sessions (0 to disable)
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m" yaml:"cleanup_interval"`

	// Cookie attributes, read from SESSION_COOKIE_*
	Cookie cookie.Attributes `envPrefix:"SESSION_" yaml:"cookie"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		CookieName:      DefaultCookieName,
		MaxLifetime:     DefaultMaxLifetime,
		StrictMode:      true,
		CleanupInterval: DefaultCleanupInterval,
		Cookie:          cookie.DefaultAttributes(),
	}
}

// Validate rejects configuration that would produce unusable cookies.
func (c Config) Validate() error {
	var errs []error
	if err := cookie.ValidateName(c.CookieName); err != nil {
		errs = append(errs, err)
	}
	if c.MaxLifetime <= 0 {
		errs = append(errs, errors.New("max lifetime must be positive"))
	}
	if c.CleanupInterval < 0 {
		errs = append(errs, errors.New("cleanup interval must not be negative"))
	}
	if err := c.Cookie.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// NewFromConfig validates cfg and creates a Middleware from it.
// Options passed explicitly override the values taken from cfg.
func NewFromConfig(store Store, cfg Config, opts ...Option) (*Middleware, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configOpts := []Option{
		WithCookieName(cfg.CookieName),
		WithCookieAttributes(cfg.Cookie),
		WithMaxLifetime(cfg.MaxLifetime),
		WithStrictMode(cfg.StrictMode),
	}
	configOpts = append(configOpts, opts...)

	return New(store, configOpts...), nil
}
