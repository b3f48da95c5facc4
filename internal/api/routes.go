package api

import (
	"github.com/labstack/echo/v4"

	"portalempleos/internal/auth"
	"portalempleos/internal/models"
	"portalempleos/internal/services"
	"portalempleos/internal/session"
)

var (
	svc      *services.Services
	sessions *session.Store
	guard    *services.Guard
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api *echo.Group, s *services.Services, store *session.Store) {
	svc = s
	sessions = store
	guard = services.NewGuard()

	// Public
	api.GET("/health", healthCheck)
	api.GET("/profiles", listProfiles)
	api.GET("/skills", listSkills)
	api.GET("/companies", listCompanies)
	api.GET("/locations", listLocations)

	authGroup := api.Group("/auth")
	authGroup.POST("/login", loginHandler, auth.LoginRateLimiter.Middleware())
	authGroup.POST("/logout", logoutHandler)
	authGroup.GET("/me", getCurrentUser)

	register := api.Group("/register")
	register.POST("/candidate", registerCandidate)
	register.POST("/employer", registerEmployer)

	// Job browsing requires a session
	jobs := api.Group("/jobs")
	jobs.Use(auth.RequireSession(store))
	jobs.Use(auth.RequireRole(models.RoleCandidate, models.RoleEmployer))
	jobs.GET("", listJobs)
}
