package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: las transacciones nunca se actualizan ni se borran.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste una transacción de stock.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, product_id, user_id, action, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.ProductID, t.UserID, t.Action, t.Quantity, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// detailQuery trae la transacción con resúmenes de usuario y producto.
// LEFT JOIN en ambos: borrar un padre deja la referencia colgante pero el
// historial sigue visible. El filtro de empresa usa el producto y cae al
// usuario si el producto ya no existe.
const detailQuery = `
	SELECT t.id, t.product_id, t.user_id, t.action, t.quantity, t.created_at,
	       u.id, u.username, u.role,
	       p.id, p.name, p.category
	FROM transactions t
	LEFT JOIN users    u ON u.id = t.user_id
	LEFT JOIN products p ON p.id = t.product_id
	WHERE COALESCE(p.company_id, u.company_id) = $1`

// GetDetail obtiene una transacción enriquecida, limitada a la empresa dada.
func (r *TransactionRepo) GetDetail(ctx context.Context, id, companyID string) (*entity.TransactionDetail, error) {
	row := r.q.QueryRow(ctx, detailQuery+` AND t.id = $2`, companyID, id)
	d, err := scanDetail(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return d, nil
}

// ListByCompany lista las transacciones de la empresa, más recientes primero.
func (r *TransactionRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.TransactionDetail, error) {
	return r.list(ctx, detailQuery+` ORDER BY t.created_at DESC`, companyID)
}

// ListByUser lista las transacciones de un usuario dentro de la empresa, más recientes primero.
func (r *TransactionRepo) ListByUser(ctx context.Context, userID, companyID string) ([]*entity.TransactionDetail, error) {
	return r.list(ctx, detailQuery+` AND t.user_id = $2 ORDER BY t.created_at DESC`, companyID, userID)
}

// ListByProduct lista las transacciones de un producto dentro de la empresa, más recientes primero.
func (r *TransactionRepo) ListByProduct(ctx context.Context, productID, companyID string) ([]*entity.TransactionDetail, error) {
	return r.list(ctx, detailQuery+` AND t.product_id = $2 ORDER BY t.created_at DESC`, companyID, productID)
}

func (r *TransactionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.TransactionDetail, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransactionDetail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func scanDetail(row pgx.Row) (*entity.TransactionDetail, error) {
	var d entity.TransactionDetail
	var userID, username, userRole *string
	var productID, productName, productCategory *string
	err := row.Scan(
		&d.ID, &d.ProductID, &d.UserID, &d.Action, &d.Quantity, &d.CreatedAt,
		&userID, &username, &userRole,
		&productID, &productName, &productCategory,
	)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		d.User = &entity.UserSummary{ID: *userID, Username: *username, Role: entity.Role(*userRole)}
	}
	if productID != nil {
		d.Product = &entity.ProductSummary{ID: *productID, Name: *productName, Category: *productCategory}
	}
	return &d, nil
}
