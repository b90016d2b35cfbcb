package context

import (
	"taskboard/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyUser is the echo.Context key holding the authenticated principal.
const KeyUser ContextKey = "user"

// SetUser stores the authenticated user on the request context.
func SetUser(c echo.Context, user *entity.User) {
	c.Set(string(KeyUser), user)
}

// GetUser returns the authenticated user, or nil when the request did not
// pass authentication.
func GetUser(c echo.Context) *entity.User {
	if user, ok := c.Get(string(KeyUser)).(*entity.User); ok {
		return user
	}

	return nil
}
