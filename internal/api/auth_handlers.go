package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portalempleos/internal/auth"
	"portalempleos/internal/errcodes"
	"portalempleos/internal/models"
)

// loginHandler handles POST /api/auth/login
func loginHandler(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	var user *models.UserData
	err := guard.Do("login", func() error {
		var err error
		user, err = svc.Auth.Login(c.Request().Context(), req.Email, req.Password)
		return err
	})
	if err != nil {
		return respondError(c, err)
	}

	auth.LoginRateLimiter.Reset(c.RealIP())

	return c.JSON(http.StatusOK, models.LoginResponse{
		User:    user,
		Message: errcodes.SuccessMessage(errcodes.Login),
	})
}

// logoutHandler handles POST /api/auth/logout
func logoutHandler(c echo.Context) error {
	if err := svc.Auth.Logout(); err != nil {
		c.Logger().Error("logout error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": errcodes.MsgDefault,
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Sesión cerrada",
	})
}

// getCurrentUser handles GET /api/auth/me
func getCurrentUser(c echo.Context) error {
	user := sessions.Get()
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Iniciá sesión para continuar",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":      user,
		"full_name": user.FullName(),
	})
}
