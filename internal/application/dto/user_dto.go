package dto

// SignupRequest entrada para registro (password en texto, se hashea en use case).
type SignupRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	Name        string `json:"name" validate:"required"`
	AccountType string `json:"accountType" validate:"required,oneof=buyer seller"`
	Role        string `json:"role" validate:"omitempty,oneof=admin user"`
}

// SigninRequest entrada para inicio de sesión.
type SigninRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse salida de signup/signin: nunca incluye password ni hash.
type AuthResponse struct {
	Message     string `json:"message"`
	Role        string `json:"role"`
	AccountType string `json:"accountType"`
}
