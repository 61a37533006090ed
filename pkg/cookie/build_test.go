package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/workersession/pkg/cookie"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	t.Run("applies all configured attributes", func(t *testing.T) {
		t.Parallel()

		attrs := cookie.Attributes{
			Lifetime: 600,
			Path:     "/hello",
			Domain:   "example.org",
			Secure:   true,
			HttpOnly: true,
			SameSite: "Strict",
		}

		c := cookie.Build("sid", "abc", attrs, now)

		assert.Equal(t, "sid", c.Name)
		assert.Equal(t, "abc", c.Value)
		assert.Equal(t, "/hello", c.Path)
		assert.Equal(t, "example.org", c.Domain)
		assert.True(t, c.Secure)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
		assert.Equal(t, now.Unix()+600, c.Expires.Unix())
	})

	t.Run("round trips through a Set-Cookie header", func(t *testing.T) {
		t.Parallel()

		attrs := cookie.Attributes{
			Lifetime: 600,
			Path:     "/hello",
			Domain:   "example.org",
			Secure:   true,
			HttpOnly: true,
			SameSite: "Strict",
		}

		w := httptest.NewRecorder()
		http.SetCookie(w, cookie.Build("sid", "abc", attrs, now))

		line := w.Header().Get("Set-Cookie")
		assert.Contains(t, line, "Path=/hello")
		assert.Contains(t, line, "Domain=example.org")
		assert.Contains(t, line, "Secure")
		assert.Contains(t, line, "HttpOnly")
		assert.Contains(t, line, "SameSite=Strict")
		assert.Contains(t, line, "Expires=")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, now.Unix()+600, cookies[0].Expires.Unix())
	})

	t.Run("zero lifetime omits expires", func(t *testing.T) {
		t.Parallel()

		c := cookie.Build("sid", "abc", cookie.Attributes{Path: "/"}, now)
		assert.True(t, c.Expires.IsZero())

		w := httptest.NewRecorder()
		http.SetCookie(w, c)
		assert.NotContains(t, w.Header().Get("Set-Cookie"), "Expires")
	})

	t.Run("negative lifetime omits expires", func(t *testing.T) {
		t.Parallel()

		c := cookie.Build("sid", "abc", cookie.Attributes{Lifetime: -10}, now)
		assert.True(t, c.Expires.IsZero())
	})

	t.Run("empty same-site policy is not emitted", func(t *testing.T) {
		t.Parallel()

		c := cookie.Build("sid", "abc", cookie.DefaultAttributes(), now)
		assert.Equal(t, http.SameSite(0), c.SameSite)

		w := httptest.NewRecorder()
		http.SetCookie(w, c)
		assert.NotContains(t, w.Header().Get("Set-Cookie"), "SameSite")
	})

	t.Run("same-site policy is case insensitive", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, http.SameSiteLaxMode, cookie.Build("sid", "x", cookie.Attributes{SameSite: "lax"}, now).SameSite)
		assert.Equal(t, http.SameSiteNoneMode, cookie.Build("sid", "x", cookie.Attributes{SameSite: "NONE", Secure: true}, now).SameSite)
	})
}

func TestExpire(t *testing.T) {
	t.Parallel()

	attrs := cookie.Attributes{Path: "/app", Domain: "example.org", HttpOnly: true, Lifetime: 300}
	c := cookie.Expire("sid", attrs)

	assert.Equal(t, "sid", c.Name)
	assert.Empty(t, c.Value)
	assert.Equal(t, "/app", c.Path)
	assert.Equal(t, "example.org", c.Domain)
	assert.Equal(t, -1, c.MaxAge)
	assert.Equal(t, int64(0), c.Expires.Unix())

	w := httptest.NewRecorder()
	http.SetCookie(w, c)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestAttributesValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		attrs   cookie.Attributes
		wantErr error
	}{
		{name: "defaults", attrs: cookie.DefaultAttributes()},
		{name: "lax", attrs: cookie.Attributes{SameSite: "Lax"}},
		{name: "strict lowercase", attrs: cookie.Attributes{SameSite: "strict"}},
		{name: "none with secure", attrs: cookie.Attributes{SameSite: "None", Secure: true}},
		{name: "none without secure", attrs: cookie.Attributes{SameSite: "None"}, wantErr: cookie.ErrInsecureSameSiteNone},
		{name: "unknown policy", attrs: cookie.Attributes{SameSite: "Sometimes"}, wantErr: cookie.ErrInvalidSameSite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.attrs.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	assert.NoError(t, cookie.ValidateName("sid"))
	assert.NoError(t, cookie.ValidateName("PHPSESSID"))
	assert.ErrorIs(t, cookie.ValidateName(""), cookie.ErrInvalidName)
	assert.ErrorIs(t, cookie.ValidateName("bad name"), cookie.ErrInvalidName)
	assert.ErrorIs(t, cookie.ValidateName("a=b"), cookie.ErrInvalidName)
	assert.ErrorIs(t, cookie.ValidateName("a;b"), cookie.ErrInvalidName)
}
