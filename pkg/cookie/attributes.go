package cookie

import (
	"fmt"
	"net/http"
	"strings"
)

// SameSite policy names accepted in configuration. Matching is case-insensitive.
const (
	SameSiteLax    = "Lax"
	SameSiteStrict = "Strict"
	SameSiteNone   = "None"
)

// Attributes holds the cookie parameters shared by every session cookie.
// Lifetime is in seconds; zero or less produces a browser-session cookie.
type Attributes struct {
	Lifetime int    `env:"COOKIE_LIFETIME" envDefault:"0" yaml:"lifetime"`
	Path     string `env:"COOKIE_PATH" envDefault:"/" yaml:"path"`
	Domain   string `env:"COOKIE_DOMAIN" envDefault:"" yaml:"domain"`
	Secure   bool   `env:"COOKIE_SECURE" envDefault:"false" yaml:"secure"`
	HttpOnly bool   `env:"COOKIE_HTTP_ONLY" envDefault:"true" yaml:"http_only"`
	SameSite string `env:"COOKIE_SAME_SITE" envDefault:"" yaml:"same_site"`
}

// DefaultAttributes returns host-only, HttpOnly, path "/" attributes without
// expiry and without a SameSite policy.
func DefaultAttributes() Attributes {
	return Attributes{
		Path:     "/",
		HttpOnly: true,
	}
}

// Validate rejects attribute combinations browsers would refuse or silently
// rewrite. It is meant to run once, when configuration is loaded.
func (a Attributes) Validate() error {
	mode, ok := sameSiteMode(a.SameSite)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidSameSite, a.SameSite)
	}
	if mode == http.SameSiteNoneMode && !a.Secure {
		return ErrInsecureSameSiteNone
	}
	return nil
}

// ValidateName reports whether name can be used as a cookie name (an RFC 7230 token).
func ValidateName(name string) error {
	if !isToken(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// sameSiteMode maps a configured policy to net/http's representation.
// An empty policy maps to SameSiteDefaultMode, which net/http omits on output.
func sameSiteMode(policy string) (http.SameSite, bool) {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case "":
		return http.SameSiteDefaultMode, true
	case "lax":
		return http.SameSiteLaxMode, true
	case "strict":
		return http.SameSiteStrictMode, true
	case "none":
		return http.SameSiteNoneMode, true
	default:
		return http.SameSiteDefaultMode, false
	}
}

func isToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isTokenByte(s[i]) {
			return false
		}
	}
	return true
}

func isTokenByte(c byte) bool {
	if c <= ' ' || c >= 0x7f {
		return false
	}
	switch c {
	case '(', ')', '<', '>', '@', ',', ';', ':', '\\', '"', '/', '[', ']', '?', '=', '{', '}':
		return false
	}
	return true
}
