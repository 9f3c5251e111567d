package gate

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// DefaultCookieName is the cookie carrying the anti-forgery token.
const DefaultCookieName = "csrftoken"

// TokenProvider supplies the anti-forgery token for a request.
type TokenProvider interface {
	CSRFToken(ctx context.Context) (string, bool)
}

// TokenFunc adapts ordinary functions to TokenProvider.
type TokenFunc func(ctx context.Context) (string, bool)

// CSRFToken calls f.
func (f TokenFunc) CSRFToken(ctx context.Context) (string, bool) { return f(ctx) }

// StaticToken always returns the same token; an empty value counts as absent.
type StaticToken string

// CSRFToken implements TokenProvider.
func (s StaticToken) CSRFToken(context.Context) (string, bool) {
	return string(s), s != ""
}

// CookieString reads the token from a "k=v; k2=v2" cookie header string.
type CookieString string

// CSRFToken implements TokenProvider.
func (c CookieString) CSRFToken(context.Context) (string, bool) {
	return ParseCookieValue(string(c), DefaultCookieName)
}

// ParseCookieValue scans a semicolon-delimited cookie string for name and
// returns its percent-decoded value. Values that fail to decode are returned
// as-is.
func ParseCookieValue(cookies, name string) (string, bool) {
	if cookies == "" || name == "" {
		return "", false
	}
	prefix := name + "="
	for _, part := range strings.Split(cookies, ";") {
		part = strings.TrimSpace(part)
		if !strings.HasPrefix(part, prefix) {
			continue
		}
		raw := part[len(prefix):]
		if decoded, err := url.PathUnescape(raw); err == nil {
			return decoded, true
		}
		return raw, true
	}
	return "", false
}

// JarTokenProvider reads the token from a cookie jar for the admin URL, the
// way a browser would present document.cookie for that origin.
type JarTokenProvider struct {
	Jar  http.CookieJar
	URL  *url.URL
	Name string
}

// CSRFToken implements TokenProvider.
func (p JarTokenProvider) CSRFToken(context.Context) (string, bool) {
	if p.Jar == nil || p.URL == nil {
		return "", false
	}
	name := p.Name
	if name == "" {
		name = DefaultCookieName
	}
	for _, c := range p.Jar.Cookies(p.URL) {
		if c.Name == name && c.Value != "" {
			if decoded, err := url.PathUnescape(c.Value); err == nil {
				return decoded, true
			}
			return c.Value, true
		}
	}
	return "", false
}
