package domain

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// AuthContext es el contexto autenticado de una petición: valor inmutable que
// se pasa explícitamente a los casos de uso (nada de estado global derivado
// del token). CompanyID y Role son los efectivos: claim del token cuando
// existe, si no el del registro fresco del usuario.
type AuthContext struct {
	UserID    string
	CompanyID string
	Role      entity.Role
}

// AuthorizeRole falla con ErrForbidden si el rol no está en allowed.
func (a AuthContext) AuthorizeRole(allowed ...entity.Role) error {
	for _, r := range allowed {
		if a.Role == r {
			return nil
		}
	}
	return ErrForbidden
}

// CanManageUsers falla con ErrForbidden si el rol es Staff (Staff nunca
// administra usuarios).
func (a AuthContext) CanManageUsers() error {
	if !a.Role.CanManageUsers() {
		return ErrForbidden
	}
	return nil
}
