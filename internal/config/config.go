package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

var (
	ErrUnknownAuthMode   = errors.New("unknown auth mode")
	ErrUnknownHeaderMode = errors.New("unknown header mode")
	ErrMissingToken      = errors.New("static auth mode requires PORTAL_API_TOKEN")
	ErrMissingBasicAuth  = errors.New("basic auth username and password are required")
	ErrMissingBaseURL    = errors.New("API base URL is required")
)

// AuthMode selects how the access token is obtained
type AuthMode string

const (
	AuthModeStatic AuthMode = "static"
	AuthModeFetch  AuthMode = "fetch"
)

// HeaderMode selects how requests to the backend are authenticated
type HeaderMode string

const (
	HeaderModeAccessToken HeaderMode = "access-token"
	HeaderModeBasic       HeaderMode = "basic"
	HeaderModeBearer      HeaderMode = "bearer"
)

// Endpoints holds backend paths relative to the API base URL
type Endpoints struct {
	Token             string
	Login             string
	RegisterCandidate string
	RegisterEmployer  string
	AvailableJobs     string
	SkillsList        string
	Companies         string
	Locations         string
}

// NewEndpoints builds the endpoint table under the given prefix
func NewEndpoints(prefix string) Endpoints {
	prefix = strings.TrimRight(prefix, "/")
	return Endpoints{
		Token:             prefix + "/getToken",
		Login:             prefix + "/login",
		RegisterCandidate: prefix + "/registerCandidateUser",
		RegisterEmployer:  prefix + "/registerEmployerUser",
		AvailableJobs:     prefix + "/getAvailableJobs",
		SkillsList:        prefix + "/getSkillsList",
		Companies:         prefix + "/getCompanies",
		Locations:         prefix + "/getLocations",
	}
}

// Config is the full portal configuration
type Config struct {
	BaseURL        string
	Endpoints      Endpoints
	AuthMode       AuthMode
	HeaderMode     HeaderMode
	StaticToken    string
	BasicUsername  string
	BasicPassword  string
	RSAPublicKey   string
	DBPath         string
	Port           string
	AllowedOrigins []string
}

const (
	DefaultBaseURL   = "http://localhost:5000"
	DefaultAPIPrefix = "/portalEmpleos/v1"
	DefaultDBPath    = "./portal.db"
	DefaultPort      = "8080"
	DefaultOrigin    = "http://localhost:5173"
)

// Load reads an optional .env file and builds the configuration from the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a lookup function
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		BaseURL:       strings.TrimRight(withDefault(getenv("PORTAL_API_BASE_URL"), DefaultBaseURL), "/"),
		Endpoints:     NewEndpoints(withDefault(getenv("PORTAL_API_PREFIX"), DefaultAPIPrefix)),
		StaticToken:   getenv("PORTAL_API_TOKEN"),
		BasicUsername: getenv("PORTAL_API_BASIC_USERNAME"),
		BasicPassword: getenv("PORTAL_API_BASIC_PASSWORD"),
		RSAPublicKey:  getenv("PORTAL_RSA_PUBLIC_KEY"),
		DBPath:        withDefault(getenv("PORTAL_DB_PATH"), DefaultDBPath),
		Port:          withDefault(getenv("PORTAL_PORT"), DefaultPort),
		HeaderMode:    HeaderMode(withDefault(getenv("PORTAL_HEADER_MODE"), string(HeaderModeAccessToken))),
	}

	switch mode := getenv("PORTAL_AUTH_MODE"); {
	case mode != "":
		cfg.AuthMode = AuthMode(mode)
	case cfg.StaticToken != "":
		cfg.AuthMode = AuthModeStatic
	default:
		cfg.AuthMode = AuthModeFetch
	}

	if cfg.RSAPublicKey == "" {
		if path := getenv("PORTAL_RSA_PUBLIC_KEY_FILE"); path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read RSA public key file: %w", err)
			}
			cfg.RSAPublicKey = string(data)
		}
	}

	for _, origin := range strings.Split(withDefault(getenv("PORTAL_ALLOWED_ORIGINS"), DefaultOrigin), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	if !filepath.IsAbs(cfg.DBPath) {
		cwd, _ := os.Getwd()
		cfg.DBPath = filepath.Join(cwd, cfg.DBPath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects inconsistent mode combinations
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}

	switch c.AuthMode {
	case AuthModeStatic:
		if c.StaticToken == "" {
			return ErrMissingToken
		}
	case AuthModeFetch:
		if c.HeaderMode != HeaderModeBasic && !c.HasBasicAuth() {
			return fmt.Errorf("fetch auth mode: %w", ErrMissingBasicAuth)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAuthMode, c.AuthMode)
	}

	switch c.HeaderMode {
	case HeaderModeAccessToken, HeaderModeBearer:
	case HeaderModeBasic:
		if !c.HasBasicAuth() {
			return fmt.Errorf("basic header mode: %w", ErrMissingBasicAuth)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownHeaderMode, c.HeaderMode)
	}

	return nil
}

// HasBasicAuth reports whether both basic credentials are set
func (c *Config) HasBasicAuth() bool {
	return c.BasicUsername != "" && c.BasicPassword != ""
}

func withDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
