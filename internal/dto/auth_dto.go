package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=4"`
}

type RegisterRequest struct {
	Username    string   `json:"username"    validate:"required,min=3,max=150"`
	Email       string   `json:"email"       validate:"required,email"`
	Password    string   `json:"password"    validate:"required,min=8"`
	Name        string   `json:"name"        validate:"required,min=2,max=100"`
	Role        string   `json:"role"        validate:"required,oneof=admin employee"`
	Permissions []string `json:"permissions"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
