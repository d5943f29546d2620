package auth

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// RegistrationTxRunner ejecuta el registro empresa + admin dentro de una
// transacción de BD, pasando repositorios atados a esa tx. Dos registros
// simultáneos con el mismo nombre no pueden tener éxito ambos: los
// constraints únicos de la tabla son el árbitro final.
type RegistrationTxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
	) error) error
}
