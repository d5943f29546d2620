package entity

import "time"

// Role es el rol de un usuario. Enumeración cerrada: agregar un rol nuevo
// obliga a revisar los switch exhaustivos de autorización.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleStaff   Role = "Staff"
)

// ParseRole valida un rol recibido por la API. Devuelve false si no es uno de
// los tres roles conocidos.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleStaff:
		return Role(s), true
	}
	return "", false
}

// Valid indica si el rol es uno de los conocidos.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// CanManageUsers indica si el rol puede administrar usuarios (Staff nunca).
func (r Role) CanManageUsers() bool {
	switch r {
	case RoleAdmin, RoleManager:
		return true
	case RoleStaff:
		return false
	}
	return false
}

// CanAssign indica si un usuario con este rol puede crear/modificar/eliminar
// usuarios del rol target. Manager solo puede tocar Staff.
func (r Role) CanAssign(target Role) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleManager:
		return target == RoleStaff
	case RoleStaff:
		return false
	}
	return false
}

// User representa un usuario del sistema. Pertenece a exactamente una Company
// (inmutable después de la creación). Username es único en todo el sistema.
type User struct {
	ID           string
	CompanyID    string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Company se carga en consultas con join (login, listados). Puede ser nil.
	Company *Company
}
