package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByIDAndCompany limita la búsqueda a la empresa del caller; fuera de
	// ella se comporta como no encontrado (aislamiento de tenant).
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.User, error)
	// GetByUsername busca en todo el sistema (username es único global) y
	// carga la Company del usuario.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}
