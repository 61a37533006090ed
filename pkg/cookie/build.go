package cookie

import (
	"net/http"
	"time"
)

// Build constructs the Set-Cookie directive for name=value.
// Expires is set to now+Lifetime only when Lifetime is positive, and SameSite
// only when a policy is configured. Attributes are expected to be validated.
func Build(name, value string, a Attributes, now time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     a.Path,
		Domain:   a.Domain,
		Secure:   a.Secure,
		HttpOnly: a.HttpOnly,
	}

	if a.Lifetime > 0 {
		c.Expires = now.Add(time.Duration(a.Lifetime) * time.Second).UTC()
	}

	if a.SameSite != "" {
		c.SameSite, _ = sameSiteMode(a.SameSite)
	}

	return c
}

// Expire constructs a directive that deletes the named cookie. Path and
// Domain must match the original cookie for browsers to drop it.
func Expire(name string, a Attributes) *http.Cookie {
	c := Build(name, "", a, time.Time{})
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	return c
}
