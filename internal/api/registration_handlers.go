package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portalempleos/internal/errcodes"
	"portalempleos/internal/models"
)

// registerCandidate handles POST /api/register/candidate
func registerCandidate(c echo.Context) error {
	var req models.CandidateRegistration
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	err := guard.Do("register_candidate", func() error {
		_, err := svc.Candidates.RegisterCandidate(c.Request().Context(), req)
		return err
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": errcodes.SuccessMessage(errcodes.RegisterCandidate),
	})
}

// registerEmployer handles POST /api/register/employer
func registerEmployer(c echo.Context) error {
	var req models.EmployerRegistration
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	err := guard.Do("register_employer", func() error {
		_, err := svc.Employers.RegisterEmployer(c.Request().Context(), req)
		return err
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": errcodes.SuccessMessage(errcodes.RegisterEmployer),
	})
}
