package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateUserRequest struct {
	Username    string   `json:"username"    validate:"required,min=3,max=150"`
	Email       string   `json:"email"       validate:"required,email"`
	Password    string   `json:"password"    validate:"required,min=8"`
	Name        string   `json:"name"        validate:"required,min=2,max=100"`
	Role        string   `json:"role"        validate:"required,oneof=admin employee"`
	Permissions []string `json:"permissions"`
}

type UpdateUserRequest struct {
	Email       *string  `json:"email"       validate:"omitempty,email"`
	Password    *string  `json:"password"    validate:"omitempty,min=8"`
	Name        *string  `json:"name"        validate:"omitempty,min=2,max=100"`
	Role        *string  `json:"role"        validate:"omitempty,oneof=admin employee"`
	Permissions []string `json:"permissions"`
	IsActive    *bool    `json:"isActive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UserResponse struct {
	ID          uint     `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	IsActive    bool     `json:"isActive"`
	CreatedAt   string   `json:"createdAt"`
}
