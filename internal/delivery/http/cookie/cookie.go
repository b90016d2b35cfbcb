// Package cookie maps token pairs onto the session cookies the API uses as
// its credential transport.
package cookie

import (
	"net/http"

	"taskboard/config"
	"taskboard/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Cookie names carrying the two session tokens.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// Manager writes and clears the session cookies with consistent attributes.
type Manager struct {
	secure     bool
	domain     string
	accessTTL  int
	refreshTTL int
}

// NewManager builds a cookie manager from the runtime config and the token
// lifetimes, so cookie expiry always tracks token expiry.
func NewManager(cfg *config.Config, tokenSvc service.TokenService) *Manager {
	secure := false
	domain := ""
	if cfg != nil && cfg.Auth != nil {
		secure = cfg.Auth.CookieSecure
		domain = cfg.Auth.CookieDomain
	}

	return &Manager{
		secure:     secure,
		domain:     domain,
		accessTTL:  int(tokenSvc.AccessTokenDuration().Seconds()),
		refreshTTL: int(tokenSvc.RefreshTokenDuration().Seconds()),
	}
}

// Read returns the named cookie's value. Absence is reported, not an error.
func Read(c echo.Context, name string) (string, bool) {
	ck, err := c.Cookie(name)
	if err != nil || ck.Value == "" {
		return "", false
	}

	return ck.Value, true
}

// Attach sets both session cookies on the response.
func (m *Manager) Attach(c echo.Context, tokens *service.TokenPair) {
	c.SetCookie(m.build(AccessTokenCookie, tokens.AccessToken, m.accessTTL))
	c.SetCookie(m.build(RefreshTokenCookie, tokens.RefreshToken, m.refreshTTL))
}

// AttachAccess refreshes only the access cookie, leaving the refresh cookie
// untouched.
func (m *Manager) AttachAccess(c echo.Context, accessToken string) {
	c.SetCookie(m.build(AccessTokenCookie, accessToken, m.accessTTL))
}

// Clear expires both session cookies on the response.
func (m *Manager) Clear(c echo.Context) {
	c.SetCookie(m.build(AccessTokenCookie, "", -1))
	c.SetCookie(m.build(RefreshTokenCookie, "", -1))
}

func (m *Manager) build(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		MaxAge:   maxAge,
		Path:     "/",
		Domain:   m.domain,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
