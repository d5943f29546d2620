package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// LedgerUseCase registra transacciones de stock de forma transaccional y las
// consulta. El invariante central: la cantidad de un producto siempre es la
// suma de sus IN menos sus OUT confirmados, también bajo escrituras
// concurrentes (la fila del producto se bloquea con SELECT FOR UPDATE).
type LedgerUseCase struct {
	txRunner TxRunner
	txRepo   repository.TransactionRepository // atado al pool, para lecturas
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, txRepo repository.TransactionRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, txRepo: txRepo}
}

// CreateTransaction registra un movimiento IN u OUT y ajusta la cantidad del
// producto en una sola transacción de BD:
//
//  1. Bloquea la fila del producto (SELECT FOR UPDATE) filtrada por empresa;
//     inexistente o de otra empresa -> ErrNotFound, indistinguibles.
//  2. OUT con stock insuficiente -> InsufficientStockError con los montos,
//     sin ningún cambio de estado.
//  3. Inserta la transacción y actualiza la cantidad; Commit o Rollback total.
//
// Abierta a cualquier rol autenticado de la empresa, incluido Staff.
func (uc *LedgerUseCase) CreateTransaction(ctx context.Context, auth domain.AuthContext, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if in.ProductID == "" || !entity.ValidAction(in.Action) || in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}

	tx := &entity.Transaction{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		UserID:    auth.UserID,
		Action:    in.Action,
		Quantity:  in.Quantity,
		CreatedAt: time.Now(),
	}

	err := uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID, auth.CompanyID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		newQuantity := product.Quantity + in.Quantity
		if in.Action == entity.ActionOUT {
			if product.Quantity < in.Quantity {
				return &domain.InsufficientStockError{
					Available: product.Quantity,
					Requested: in.Quantity,
				}
			}
			newQuantity = product.Quantity - in.Quantity
		}

		if err := txRepo.Create(ctx, tx); err != nil {
			return err
		}
		return productRepo.UpdateQuantity(ctx, in.ProductID, newQuantity)
	})
	if err != nil {
		return nil, err
	}

	// Ya confirmada: se relee enriquecida con resúmenes de usuario y producto.
	detail, err := uc.txRepo.GetDetail(ctx, tx.ID, auth.CompanyID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return toResponse(&entity.TransactionDetail{Transaction: *tx}), nil
	}
	return toResponse(detail), nil
}

// List devuelve todas las transacciones de la empresa, más recientes primero.
func (uc *LedgerUseCase) List(ctx context.Context, auth domain.AuthContext) ([]*dto.TransactionResponse, error) {
	details, err := uc.txRepo.ListByCompany(ctx, auth.CompanyID)
	if err != nil {
		return nil, err
	}
	return toResponses(details), nil
}

// GetByID devuelve una transacción de la empresa; de otra empresa -> ErrNotFound.
func (uc *LedgerUseCase) GetByID(ctx context.Context, auth domain.AuthContext, id string) (*dto.TransactionResponse, error) {
	detail, err := uc.txRepo.GetDetail(ctx, id, auth.CompanyID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(detail), nil
}

// ListByUser devuelve las transacciones de un usuario. Solo Admin puede ver
// las de otros; el resto únicamente las propias.
func (uc *LedgerUseCase) ListByUser(ctx context.Context, auth domain.AuthContext, userID string) ([]*dto.TransactionResponse, error) {
	if auth.Role != entity.RoleAdmin && auth.UserID != userID {
		return nil, domain.ErrForbidden
	}
	details, err := uc.txRepo.ListByUser(ctx, userID, auth.CompanyID)
	if err != nil {
		return nil, err
	}
	return toResponses(details), nil
}

// ListByProduct devuelve las transacciones de un producto de la empresa.
func (uc *LedgerUseCase) ListByProduct(ctx context.Context, auth domain.AuthContext, productID string) ([]*dto.TransactionResponse, error) {
	details, err := uc.txRepo.ListByProduct(ctx, productID, auth.CompanyID)
	if err != nil {
		return nil, err
	}
	return toResponses(details), nil
}

func toResponse(d *entity.TransactionDetail) *dto.TransactionResponse {
	out := &dto.TransactionResponse{
		ID:        d.ID,
		ProductID: d.ProductID,
		UserID:    d.UserID,
		Action:    d.Action,
		Quantity:  d.Quantity,
		CreatedAt: d.CreatedAt,
	}
	if d.User != nil {
		out.User = &dto.TransactionUserDTO{ID: d.User.ID, Username: d.User.Username, Role: string(d.User.Role)}
	}
	if d.Product != nil {
		out.Product = &dto.TransactionProductDTO{ID: d.Product.ID, Name: d.Product.Name, Category: d.Product.Category}
	}
	return out
}

func toResponses(details []*entity.TransactionDetail) []*dto.TransactionResponse {
	out := make([]*dto.TransactionResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toResponse(d))
	}
	return out
}
