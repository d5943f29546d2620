package dto

// RegisterRequest registro de una empresa nueva con su usuario Admin.
type RegisterRequest struct {
	CompanyName string `json:"companyName"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"` // opcional
}

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse respuesta de register y login: token más datos del usuario.
// Role y CompanyID se duplican en el nivel superior por conveniencia del cliente.
type AuthResponse struct {
	Token     string       `json:"token"`
	Role      string       `json:"role"`
	CompanyID string       `json:"companyId"`
	User      UserResponse `json:"user"`
}
