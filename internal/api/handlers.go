package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"portalempleos/internal/errcodes"
	"portalempleos/internal/models"
	"portalempleos/internal/services"
)

// Health check
func healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// listProfiles handles GET /api/profiles
func listProfiles(c echo.Context) error {
	roles := []models.Role{models.RoleCandidate, models.RoleEmployer}
	profiles := make([]models.Profile, 0, len(roles))
	for _, role := range roles {
		profiles = append(profiles, models.Profile{
			Role:        role,
			Label:       role.Label(),
			RegisterURL: "/api/register/" + string(role),
		})
	}
	return c.JSON(http.StatusOK, profiles)
}

// respondError writes a service error with a status derived from its kind and code
func respondError(c echo.Context, err error) error {
	if errors.Is(err, services.ErrInFlight) {
		return c.JSON(http.StatusConflict, map[string]string{
			"error": "Ya hay una solicitud en curso",
		})
	}

	if errors.Is(err, services.ErrInvalidUserType) {
		return c.JSON(http.StatusForbidden, map[string]string{
			"error": errcodes.MsgInvalidUserType,
		})
	}

	svcErr, ok := services.AsError(err)
	if !ok {
		c.Logger().Error("unexpected error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": errcodes.MsgDefault,
		})
	}

	status := http.StatusBadGateway
	switch svcErr.Kind {
	case services.KindValidation:
		status = http.StatusBadRequest
	case services.KindTransport, services.KindParse:
		c.Logger().Error(string(svcErr.Endpoint), " failed: ", svcErr.Err)
		status = http.StatusServiceUnavailable
	case services.KindApplication:
		switch svcErr.Code {
		case errcodes.NotFound:
			status = http.StatusNotFound
		case errcodes.UserAlreadyRegistered:
			status = http.StatusConflict
		case errcodes.BadRequest, errcodes.IncorrectDataLength:
			status = http.StatusBadRequest
		}
	}

	body := map[string]string{"error": svcErr.Message}
	if svcErr.Code != "" {
		body["code"] = string(svcErr.Code)
	}
	if svcErr.Field != "" {
		body["field"] = svcErr.Field
	}
	return c.JSON(status, body)
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, map[string]string{
		"error": errcodes.MsgBadRequest,
	})
}
