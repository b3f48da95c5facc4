package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portalempleos/internal/errcodes"
	"portalempleos/internal/models"
	"portalempleos/internal/session"
)

// Context key for the session user
const ContextKeyUser = "user"

// RequireSession middleware rejects requests when nobody is logged in
func RequireSession(store *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := store.Get()
			if user == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Iniciá sesión para continuar",
				})
			}

			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}

// RequireRole middleware checks the session user's role
// Must be used after RequireSession
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := GetUserFromContext(c)
			if user == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Iniciá sesión para continuar",
				})
			}

			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, map[string]string{
				"error": errcodes.MsgInvalidUserType,
			})
		}
	}
}

// GetUserFromContext returns the session user set by RequireSession
func GetUserFromContext(c echo.Context) *models.UserData {
	user, _ := c.Get(ContextKeyUser).(*models.UserData)
	return user
}
