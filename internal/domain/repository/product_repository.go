package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las búsquedas van filtradas por empresa: un producto de otra empresa
// se comporta como inexistente.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro de
	// la transacción actual. Solo tiene sentido sobre un Querier transaccional.
	GetForUpdate(ctx context.Context, id, companyID string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateQuantity actualiza solo la cantidad (usada por el motor de
	// transacciones dentro de su transacción).
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
