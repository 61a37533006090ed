// Package cookie reads session tokens from raw Cookie headers and builds the
// Set-Cookie directives that carry them back to the client.
//
// The package is deliberately small and side-effect free: parsing never fails
// and building never touches an http.ResponseWriter. Callers decide when and
// where the resulting *http.Cookie is written.
//
// # Extracting
//
// Parse splits a raw Cookie header into a Jar. Extract is a shortcut that
// returns a single value, or an empty string when the cookie is missing or the
// header is malformed:
//
//	token := cookie.Extract(r.Header.Get("Cookie"), "sid")
//
// # Building
//
// Attributes describe the cookie parameters shared by every session cookie of
// a process. They are validated once at startup and then used to build
// directives:
//
//	attrs := cookie.Attributes{
//	    Path:     "/",
//	    HttpOnly: true,
//	    SameSite: "Lax",
//	    Lifetime: 3600,
//	}
//	if err := attrs.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	http.SetCookie(w, cookie.Build("sid", token, attrs, time.Now()))
//
// Expire builds the directive that removes a cookie from the browser.
//
// # Configuration
//
// Attributes carries env and yaml tags, so it can be embedded into a bigger
// configuration struct and populated with github.com/caarlos0/env.
//
// # Error Handling
//
// Only configuration validation returns errors: ErrInvalidName,
// ErrInvalidSameSite and ErrInsecureSameSiteNone.
package cookie
