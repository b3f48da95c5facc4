package models

// Role represents the kind of portal account
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleCandidate || r == RoleEmployer
}

// Label returns the role name shown on the profile selection screen
func (r Role) Label() string {
	switch r {
	case RoleCandidate:
		return "Candidato"
	case RoleEmployer:
		return "Reclutador"
	}
	return string(r)
}

// UserData is the logged-in user's profile as returned by the login endpoint
type UserData struct {
	UserID    int64  `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
}

// FullName returns first and last name joined by a space
func (u *UserData) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
