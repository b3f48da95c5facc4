package services

import (
	"context"

	"portalempleos/internal/errcodes"
	"portalempleos/internal/models"
)

// SkillService lists the skills catalog
type SkillService struct {
	caller
	path string
}

// NewSkillService creates a skill service
func NewSkillService(d Deps) *SkillService {
	return &SkillService{
		caller: caller{client: d.Client, observe: d.Observer},
		path:   d.Endpoints.SkillsList,
	}
}

// GetSkillsList fetches every skill a candidate can pick
func (s *SkillService) GetSkillsList(ctx context.Context) ([]models.Skill, error) {
	skills := []models.Skill{}
	if _, err := s.do(ctx, request{endpoint: errcodes.GetSkills, path: s.path, out: &skills}); err != nil {
		return nil, err
	}
	return skills, nil
}

// CatalogService lists companies and locations for the registration and
// search forms
type CatalogService struct {
	caller
	companiesPath string
	locationsPath string
}

// NewCatalogService creates a catalog service
func NewCatalogService(d Deps) *CatalogService {
	return &CatalogService{
		caller:        caller{client: d.Client, observe: d.Observer},
		companiesPath: d.Endpoints.Companies,
		locationsPath: d.Endpoints.Locations,
	}
}

// GetCompanies fetches the companies an employer can register under
func (s *CatalogService) GetCompanies(ctx context.Context) ([]models.Company, error) {
	companies := []models.Company{}
	if _, err := s.do(ctx, request{endpoint: errcodes.GetCompanies, path: s.companiesPath, out: &companies}); err != nil {
		return nil, err
	}
	return companies, nil
}

// GetLocations fetches the selectable job locations
func (s *CatalogService) GetLocations(ctx context.Context) ([]models.Location, error) {
	locations := []models.Location{}
	if _, err := s.do(ctx, request{endpoint: errcodes.GetLocations, path: s.locationsPath, out: &locations}); err != nil {
		return nil, err
	}
	return locations, nil
}
