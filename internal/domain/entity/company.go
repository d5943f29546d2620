package entity

import "time"

// Estados válidos de Company.
const (
	CompanyStatusActive   = "active"
	CompanyStatusInactive = "inactive"
)

// Company representa una organización/tenant del sistema. Es la raíz de
// aislamiento: todo User, Product y Transaction pertenece a exactamente una.
type Company struct {
	ID        string
	Name      string // único en todo el sistema
	Email     string // opcional
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
