package services

import (
	"context"
	"strings"

	"portalempleos/internal/auth"
	"portalempleos/internal/errcodes"
	"portalempleos/internal/models"
)

// CandidateService registers candidates
type CandidateService struct {
	caller
	path      string
	encryptor auth.Encryptor
}

// NewCandidateService creates a candidate registration service
func NewCandidateService(d Deps) *CandidateService {
	return &CandidateService{
		caller:    caller{client: d.Client, observe: d.Observer},
		path:      d.Endpoints.RegisterCandidate,
		encryptor: d.Encryptor,
	}
}

// RegisterCandidate validates reg and submits it
func (s *CandidateService) RegisterCandidate(ctx context.Context, reg models.CandidateRegistration) (*models.Envelope, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.LastName = strings.TrimSpace(reg.LastName)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.ResumeURL = strings.TrimSpace(reg.ResumeURL)

	return s.do(ctx, request{
		endpoint: errcodes.RegisterCandidate,
		path:     s.path,
		validate: func() error { return validateInput(errcodes.RegisterCandidate, reg) },
		body: func() any {
			payload := reg
			payload.ConfirmPassword = ""
			payload.Password = encryptPassword(s.encryptor, reg.Password)
			return payload
		},
	})
}

// EmployerService registers employers
type EmployerService struct {
	caller
	path      string
	encryptor auth.Encryptor
}

// NewEmployerService creates an employer registration service
func NewEmployerService(d Deps) *EmployerService {
	return &EmployerService{
		caller:    caller{client: d.Client, observe: d.Observer},
		path:      d.Endpoints.RegisterEmployer,
		encryptor: d.Encryptor,
	}
}

// RegisterEmployer validates reg and submits it
func (s *EmployerService) RegisterEmployer(ctx context.Context, reg models.EmployerRegistration) (*models.Envelope, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.LastName = strings.TrimSpace(reg.LastName)
	reg.Email = strings.TrimSpace(reg.Email)

	return s.do(ctx, request{
		endpoint: errcodes.RegisterEmployer,
		path:     s.path,
		validate: func() error { return validateInput(errcodes.RegisterEmployer, reg) },
		body: func() any {
			payload := reg
			payload.ConfirmPassword = ""
			payload.Password = encryptPassword(s.encryptor, reg.Password)
			return payload
		},
	})
}
