package services

import (
	"context"
	"fmt"
	"log"

	"portalempleos/internal/auth"
	"portalempleos/internal/config"
	"portalempleos/internal/errcodes"
	"portalempleos/internal/models"
	"portalempleos/internal/session"
)

// Poster sends a request to the backend and returns its envelope
type Poster interface {
	Post(ctx context.Context, endpoint string, body any) (*models.Envelope, error)
}

// Deps are the collaborators shared by all services
type Deps struct {
	Client    Poster
	Endpoints config.Endpoints
	Store     *session.Store
	Encryptor auth.Encryptor // nil sends passwords unchanged
	Observer  Observer       // optional
}

// Services bundles every domain service
type Services struct {
	Auth       *AuthService
	Candidates *CandidateService
	Employers  *EmployerService
	Jobs       *JobService
	Skills     *SkillService
	Catalog    *CatalogService
}

// New creates all services from deps
func New(d Deps) *Services {
	return &Services{
		Auth:       NewAuthService(d),
		Candidates: NewCandidateService(d),
		Employers:  NewEmployerService(d),
		Jobs:       NewJobService(d),
		Skills:     NewSkillService(d),
		Catalog:    NewCatalogService(d),
	}
}

// request describes one backend call
type request struct {
	endpoint    errcodes.Endpoint
	path        string
	validate    func() error // optional, runs before anything is sent
	body        func() any   // builds the body after validation
	out         any          // optional destination for envelope data
	requireData bool
}

type caller struct {
	client  Poster
	observe Observer
}

// do runs req through Validating, Sending and code resolution
func (c *caller) do(ctx context.Context, req request) (*models.Envelope, error) {
	t := &tracker{endpoint: req.endpoint, observe: c.observe}

	t.to(StateValidating)
	if req.validate != nil {
		if err := req.validate(); err != nil {
			t.to(StateRejected)
			return nil, err
		}
	}

	var body any = struct{}{}
	if req.body != nil {
		body = req.body()
	}

	t.to(StateSending)
	env, err := c.client.Post(ctx, req.path, body)
	if err != nil {
		t.to(StateFailed)
		return nil, connectionError(req.endpoint, err)
	}

	if !errcodes.IsSuccess(env.Code) {
		t.to(StateFailed)
		return nil, applicationError(req.endpoint, env.Code, env.Description)
	}

	if req.out != nil {
		if req.requireData && !env.HasData() {
			t.to(StateFailed)
			return nil, connectionError(req.endpoint, fmt.Errorf("%s: missing data", req.endpoint))
		}
		if err := env.DecodeData(req.out); err != nil {
			t.to(StateFailed)
			return nil, connectionError(req.endpoint, fmt.Errorf("failed to decode %s data: %w", req.endpoint, err))
		}
	}

	t.to(StateSuccess)
	return env, nil
}

// encryptPassword falls back to the plain password when encryption fails
func encryptPassword(enc auth.Encryptor, plain string) string {
	if enc == nil {
		return plain
	}
	out, err := enc.Encrypt(plain)
	if err != nil || out == "" {
		log.Printf("Error encrypting password, sending plain text: %v", err)
		return plain
	}
	return out
}
