package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func listSkills(c echo.Context) error {
	skills, err := svc.Skills.GetSkillsList(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, skills)
}

func listCompanies(c echo.Context) error {
	companies, err := svc.Catalog.GetCompanies(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, companies)
}

func listLocations(c echo.Context) error {
	locations, err := svc.Catalog.GetLocations(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, locations)
}
