package models

// CandidateRegistration is the body for candidate sign-up.
// ConfirmPassword comes from the UI and is cleared before sending.
type CandidateRegistration struct {
	Name            string  `json:"name" validate:"required,max=20"`
	LastName        string  `json:"last_name" validate:"required,max=20"`
	Email           string  `json:"email" validate:"required,max=60"`
	Password        string  `json:"password" validate:"required,max=30"`
	ConfirmPassword string  `json:"confirm_password,omitempty" validate:"omitempty,eqfield=Password"`
	ResumeURL       string  `json:"resume_url" validate:"required,max=100,weburl"`
	SkillList       []int64 `json:"skill_list" validate:"min=1"`
}

// EmployerRegistration is the body for employer sign-up
type EmployerRegistration struct {
	Name            string `json:"name" validate:"required,max=20"`
	LastName        string `json:"last_name" validate:"required,max=20"`
	Email           string `json:"email" validate:"required,max=60"`
	Password        string `json:"password" validate:"required,max=30"`
	ConfirmPassword string `json:"confirm_password,omitempty" validate:"omitempty,eqfield=Password"`
	CompanyID       int64  `json:"company_id" validate:"gt=0"`
}
