package dto

import "time"

// CompanySummary resumen de empresa embebido en respuestas de usuario.
type CompanySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserResponse usuario sin hash de password.
type UserResponse struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Role      string          `json:"role"`
	CompanyID string          `json:"company_id"`
	Company   *CompanySummary `json:"company,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateUserRequest alta de usuario por un Admin o Manager.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest actualización parcial: solo los campos presentes se aplican.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}
