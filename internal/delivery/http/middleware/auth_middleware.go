// Package middleware contains the HTTP middleware for the delivery layer.
package middleware

import (
	"strings"

	"taskboard/config"
	deliverycontext "taskboard/internal/delivery/context"
	"taskboard/internal/delivery/http/cookie"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/repository"
	"taskboard/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// defaultPublicPathPrefixes is the built-in bypass allow-list: documentation
// endpoints plus the entry points a client must reach without a session.
var defaultPublicPathPrefixes = []string{
	"/swagger",
	"/api/schema",
	"/redoc",
	"/schema",
	"/login",
	"/register",
	"/refresh",
	"/health",
}

// AuthMiddleware provides middleware for session authentication and
// role-based authorization.
type AuthMiddleware struct {
	tokenSvc       service.TokenService
	userRepo       repository.UserRepository
	bypassPrefixes []string
}

// NewAuthMiddleware is the constructor for AuthMiddleware. The bypass
// allow-list is fixed at construction; config may override the defaults.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository, cfg *config.Config) *AuthMiddleware {
	prefixes := defaultPublicPathPrefixes
	if cfg != nil && cfg.Auth != nil && len(cfg.Auth.PublicPathPrefixes) > 0 {
		prefixes = cfg.Auth.PublicPathPrefixes
	}

	return &AuthMiddleware{
		tokenSvc:       tokenSvc,
		userRepo:       userRepo,
		bypassPrefixes: prefixes,
	}
}

// Authenticate validates the access credential and resolves the request to a
// principal. Credential lookup order: session cookie, then Authorization
// bearer fallback. All validation failure kinds collapse into one
// user-facing rejection.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.isBypassed(c.Request().URL.Path) {
			return next(c)
		}

		tokenString, ok := m.extractCredential(c)
		if !ok {
			return domainerrors.ErrNotLoggedIn
		}

		ctx := c.Request().Context()

		userID, err := m.tokenSvc.Validate(ctx, tokenString, service.TokenTypeAccess)
		if err != nil {
			return domainerrors.ErrSessionExpired
		}

		user, err := m.userRepo.FindByID(ctx, userID)
		if err != nil {
			return domainerrors.ErrSessionExpired
		}

		deliverycontext.SetUser(c, user)

		return next(c)
	}
}

// RequireAdmin gates a route on the administrative role. It must be used
// AFTER Authenticate.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := deliverycontext.GetUser(c)
		if user == nil || !user.IsAdmin() {
			return domainerrors.ErrForbidden
		}

		return next(c)
	}
}

func (m *AuthMiddleware) isBypassed(path string) bool {
	for _, prefix := range m.bypassPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

func (m *AuthMiddleware) extractCredential(c echo.Context) (string, bool) {
	if token, ok := cookie.Read(c, cookie.AccessTokenCookie); ok {
		return token, true
	}

	authHeader := c.Request().Header.Get("Authorization")
	if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader && token != "" {
		return token, true
	}

	return "", false
}
