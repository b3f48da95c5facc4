package models

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=50,email"`
	Password string `json:"password" validate:"required,max=30"`
}

// LoginResponse is returned to the UI after a successful login
type LoginResponse struct {
	User    *UserData `json:"user"`
	Message string    `json:"message"`
}

// Profile is one entry of the profile selection screen
type Profile struct {
	Role        Role   `json:"role"`
	Label       string `json:"label"`
	RegisterURL string `json:"register_url"`
}
