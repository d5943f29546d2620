package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia del ledger.
// Las transacciones son append-only: no hay Update ni Delete.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	// GetDetail devuelve la transacción enriquecida con resúmenes de usuario y
	// producto, limitada a la empresa dada. Nil si no existe o es de otra empresa.
	GetDetail(ctx context.Context, id, companyID string) (*entity.TransactionDetail, error)
	// ListByCompany lista todas las transacciones de productos de la empresa,
	// más recientes primero.
	ListByCompany(ctx context.Context, companyID string) ([]*entity.TransactionDetail, error)
	ListByUser(ctx context.Context, userID, companyID string) ([]*entity.TransactionDetail, error)
	ListByProduct(ctx context.Context, productID, companyID string) ([]*entity.TransactionDetail, error)
}
