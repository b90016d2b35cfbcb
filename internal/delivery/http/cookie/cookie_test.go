package cookie

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskboard/config"
	"taskboard/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticTokenService only reports token lifetimes; the manager needs nothing else.
type staticTokenService struct{}

func (staticTokenService) Issue(uuid.UUID) (*service.TokenPair, error) { return nil, nil }
func (staticTokenService) Validate(_ context.Context, _, _ string) (uuid.UUID, error) {
	return uuid.Nil, nil
}
func (staticTokenService) Refresh(_ context.Context, _ string) (*service.TokenPair, error) {
	return nil, nil
}
func (staticTokenService) Revoke(_ context.Context, _ string) error { return nil }
func (staticTokenService) AccessTokenDuration() time.Duration { return 24 * time.Hour }
func (staticTokenService) RefreshTokenDuration() time.Duration {
	return 7 * 24 * time.Hour
}

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestManager_AttachSetsSessionCookies(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{CookieSecure: false}}
	manager := NewManager(cfg, staticTokenService{})

	c, rec := newTestContext()
	manager.Attach(c, &service.TokenPair{AccessToken: "access-value", RefreshToken: "refresh-value"})

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)

	byName := map[string]*http.Cookie{}
	for _, ck := range cookies {
		byName[ck.Name] = ck
	}

	access := byName[AccessTokenCookie]
	require.NotNil(t, access)
	assert.Equal(t, "access-value", access.Value)
	assert.Equal(t, 86400, access.MaxAge)
	assert.Equal(t, "/", access.Path)
	assert.True(t, access.HttpOnly)
	assert.False(t, access.Secure)
	assert.Equal(t, http.SameSiteLaxMode, access.SameSite)

	refresh := byName[RefreshTokenCookie]
	require.NotNil(t, refresh)
	assert.Equal(t, "refresh-value", refresh.Value)
	assert.Equal(t, 604800, refresh.MaxAge)
}

func TestManager_ClearExpiresCookies(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{}}
	manager := NewManager(cfg, staticTokenService{})

	c, rec := newTestContext()
	manager.Attach(c, &service.TokenPair{AccessToken: "access-value", RefreshToken: "refresh-value"})
	manager.Clear(c)

	// The last write wins per cookie name: both must come back empty and expired.
	cleared := map[string]*http.Cookie{}
	for _, ck := range rec.Result().Cookies() {
		cleared[ck.Name] = ck
	}

	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		ck := cleared[name]
		require.NotNil(t, ck)
		assert.Empty(t, ck.Value)
		assert.Negative(t, ck.MaxAge)
	}
}

func TestRead_MissingCookie(t *testing.T) {
	c, _ := newTestContext()

	value, ok := Read(c, AccessTokenCookie)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestRead_PresentCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "token-value"})
	c := e.NewContext(req, httptest.NewRecorder())

	value, ok := Read(c, AccessTokenCookie)
	assert.True(t, ok)
	assert.Equal(t, "token-value", value)
}
