package models

// Job is a job listing owned by the backend
type Job struct {
	CompanyID      int64  `json:"company_id"`
	CompanyName    string `json:"company_name"`
	JobTitle       string `json:"job_title"`
	JobDescription string `json:"job_description"`
	Location       string `json:"location"`
	Requirements   string `json:"requirements"`
	Salary         string `json:"salary"`
}

// JobsRequest is the body for the available jobs endpoint
type JobsRequest struct {
	CompanyID int64 `json:"company_id,omitempty"`
}

// JobFilter narrows a job list the way the candidate home screen does
type JobFilter struct {
	Companies []string // exact company names, any of
	Titles    []string // exact job titles, any of
	Locations []string // exact locations, any of
	Area      string   // substring of title or description
	Location  string   // substring of location
}

// JobFacets lists the distinct values a filter can select
type JobFacets struct {
	Companies []string `json:"companies"`
	Titles    []string `json:"titles"`
	Locations []string `json:"locations"`
}

// JobPage is one page of a filtered job list
type JobPage struct {
	Jobs       []Job     `json:"jobs"`
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
	Total      int       `json:"total"`
	Facets     JobFacets `json:"facets"`
}
