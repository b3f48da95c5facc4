package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"portalempleos/internal/models"
	"portalempleos/internal/services"
)

// listJobs handles GET /api/jobs
//
// Query parameters: company_id (server-side filter), area, location,
// empresa, puesto, ubicacion (repeatable exact matches) and page.
func listJobs(c echo.Context) error {
	var companyID int64
	if raw := c.QueryParam("company_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "company_id inválido",
			})
		}
		companyID = id
	}

	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "página inválida",
			})
		}
		page = p
	}

	jobs, err := svc.Jobs.GetAvailableJobs(c.Request().Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}

	query := c.QueryParams()
	filtered := services.FilterJobs(jobs, models.JobFilter{
		Companies: query["empresa"],
		Titles:    query["puesto"],
		Locations: query["ubicacion"],
		Area:      c.QueryParam("area"),
		Location:  c.QueryParam("location"),
	})

	result := services.Paginate(filtered, page, services.JobsPerPage)
	result.Facets = services.Facets(jobs)
	return c.JSON(http.StatusOK, result)
}
