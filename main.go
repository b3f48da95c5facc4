package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"portalempleos/internal/api"
	"portalempleos/internal/auth"
	"portalempleos/internal/client"
	"portalempleos/internal/config"
	"portalempleos/internal/database"
	"portalempleos/internal/services"
	"portalempleos/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Printf("Initializing local storage at %s", cfg.DBPath)
	if err := database.Open(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	kv := database.NewKVRepo()
	if keys, err := kv.Keys(); err != nil {
		log.Printf("Warning: failed to list local storage: %v", err)
	} else if len(keys) > 0 {
		log.Printf("Restored local storage keys: %s", strings.Join(keys, ", "))
	}
	store := session.NewStore(kv)

	httpClient := &http.Client{}
	tokens := client.NewTokenProvider(client.TokenProviderConfig{
		Mode:        cfg.AuthMode,
		StaticToken: cfg.StaticToken,
		Fetcher:     client.NewBasicFetcher(cfg, httpClient),
		Store:       session.NewTokenCache(kv),
	})

	encryptor, err := auth.NewEncryptor(cfg.RSAPublicKey)
	if err != nil {
		log.Fatalf("Failed to load RSA public key: %v", err)
	}

	svc := services.New(services.Deps{
		Client:    client.New(cfg, tokens, httpClient),
		Endpoints: cfg.Endpoints,
		Store:     store,
		Encryptor: encryptor,
		Observer:  logFailures,
	})

	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}))

	// API routes
	apiGroup := e.Group("/api")
	api.RegisterRoutes(apiGroup, svc, store)

	log.Printf("Starting portal backend on port %s (api %s, auth %s)", cfg.Port, cfg.BaseURL, cfg.AuthMode)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

// logFailures reports requests that ended in StateFailed
func logFailures(t services.Transition) {
	if t.To == services.StateFailed {
		log.Printf("%s request failed", t.Endpoint)
	}
}
