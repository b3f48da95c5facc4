package services

import (
	"context"
	"sort"
	"strings"

	"portalempleos/internal/errcodes"
	"portalempleos/internal/models"
)

// JobsPerPage matches the candidate home screen
const JobsPerPage = 8

// JobService lists available jobs
type JobService struct {
	caller
	path string
}

// NewJobService creates a job service
func NewJobService(d Deps) *JobService {
	return &JobService{
		caller: caller{client: d.Client, observe: d.Observer},
		path:   d.Endpoints.AvailableJobs,
	}
}

// GetAvailableJobs fetches the open jobs, optionally for one company (0 = all)
func (s *JobService) GetAvailableJobs(ctx context.Context, companyID int64) ([]models.Job, error) {
	var jobs []models.Job
	_, err := s.do(ctx, request{
		endpoint: errcodes.GetAvailableJobs,
		path:     s.path,
		body:     func() any { return models.JobsRequest{CompanyID: companyID} },
		out:      &jobs,
	})
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	return jobs, nil
}

// FilterJobs keeps the jobs matching every set criterion of f
func FilterJobs(jobs []models.Job, f models.JobFilter) []models.Job {
	area := strings.ToLower(strings.TrimSpace(f.Area))
	location := strings.ToLower(strings.TrimSpace(f.Location))

	out := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if !matchesAny(job.CompanyName, f.Companies) ||
			!matchesAny(job.JobTitle, f.Titles) ||
			!matchesAny(job.Location, f.Locations) {
			continue
		}
		if area != "" &&
			!strings.Contains(strings.ToLower(job.JobTitle), area) &&
			!strings.Contains(strings.ToLower(job.JobDescription), area) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(job.Location), location) {
			continue
		}
		out = append(out, job)
	}
	return out
}

// matchesAny is true for an empty selection
func matchesAny(value string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if value == s {
			return true
		}
	}
	return false
}

// Facets lists the sorted distinct companies, titles and locations of jobs
func Facets(jobs []models.Job) models.JobFacets {
	return models.JobFacets{
		Companies: distinct(jobs, func(j models.Job) string { return j.CompanyName }),
		Titles:    distinct(jobs, func(j models.Job) string { return j.JobTitle }),
		Locations: distinct(jobs, func(j models.Job) string { return j.Location }),
	}
}

func distinct(jobs []models.Job, field func(models.Job) string) []string {
	seen := make(map[string]bool)
	values := []string{}
	for _, job := range jobs {
		v := field(job)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Paginate returns page (1-based) of jobs. Out of range pages are clamped.
func Paginate(jobs []models.Job, page, perPage int) models.JobPage {
	if perPage <= 0 {
		perPage = JobsPerPage
	}
	totalPages := (len(jobs) + perPage - 1) / perPage
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(jobs) {
		start = len(jobs)
	}
	if end > len(jobs) {
		end = len(jobs)
	}

	return models.JobPage{
		Jobs:       jobs[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      len(jobs),
	}
}
