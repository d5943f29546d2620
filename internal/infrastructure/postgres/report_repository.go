package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para el agregador de reportes.
// Todas las consultas filtran por empresa vía el producto de la transacción.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// GetStockMovements suma las cantidades IN vs OUT de todas las transacciones
// de productos de la empresa. COALESCE devuelve cero si no hay movimientos.
func (r *ReportRepo) GetStockMovements(ctx context.Context, companyID string) (repository.StockMovementTotals, error) {
	const query = `
	SELECT
	    COALESCE(SUM(t.quantity) FILTER (WHERE t.action = 'IN'),  0) AS stock_in,
	    COALESCE(SUM(t.quantity) FILTER (WHERE t.action = 'OUT'), 0) AS stock_out
	FROM transactions t
	JOIN products p ON p.id = t.product_id
	WHERE p.company_id = $1`

	var totals repository.StockMovementTotals
	err := r.pool.QueryRow(ctx, query, companyID).Scan(&totals.StockIn, &totals.StockOut)
	if err != nil {
		return repository.StockMovementTotals{}, fmt.Errorf("reports.GetStockMovements: %w", err)
	}
	return totals, nil
}

// GetTopProducts devuelve los productos con mayor volumen de movimiento
// (IN y OUT suman como volumen, no se netean), descendente.
// min(created_at) en el ORDER BY rompe empates por orden de aparición.
func (r *ReportRepo) GetTopProducts(ctx context.Context, companyID string, limit int) ([]repository.ProductMovement, error) {
	const query = `
	SELECT p.id, p.name, SUM(t.quantity) AS movements
	FROM transactions t
	JOIN products p ON p.id = t.product_id
	WHERE p.company_id = $1
	GROUP BY p.id, p.name
	ORDER BY movements DESC, MIN(t.created_at) ASC
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductMovement
	for rows.Next() {
		var row repository.ProductMovement
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Movements); err != nil {
			return nil, fmt.Errorf("reports.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTransactionsByDate cuenta transacciones por día calendario (fecha UTC de
// creación), ascendente. start/end nil desactivan el filtro correspondiente.
func (r *ReportRepo) GetTransactionsByDate(ctx context.Context, companyID string, start, end *time.Time) ([]repository.DateCount, error) {
	const query = `
	SELECT to_char((t.created_at AT TIME ZONE 'UTC')::date, 'YYYY-MM-DD') AS day,
	       COUNT(*) AS transactions
	FROM transactions t
	JOIN products p ON p.id = t.product_id
	WHERE p.company_id = $1
	  AND ($2::timestamptz IS NULL OR t.created_at >= $2)
	  AND ($3::timestamptz IS NULL OR t.created_at <= $3)
	GROUP BY day
	ORDER BY day ASC`

	rows, err := r.pool.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("reports.GetTransactionsByDate: %w", err)
	}
	defer rows.Close()

	var results []repository.DateCount
	for rows.Next() {
		var row repository.DateCount
		if err := rows.Scan(&row.Date, &row.Count); err != nil {
			return nil, fmt.Errorf("reports.GetTransactionsByDate scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetLowStock devuelve los productos con cantidad <= threshold, ascendente por cantidad.
func (r *ReportRepo) GetLowStock(ctx context.Context, companyID string, threshold int) ([]*entity.Product, error) {
	const query = `
	SELECT id, company_id, name, quantity, price, category, created_at, updated_at
	FROM products
	WHERE company_id = $1 AND quantity <= $2
	ORDER BY quantity ASC`

	rows, err := r.pool.Query(ctx, query, companyID, threshold)
	if err != nil {
		return nil, fmt.Errorf("reports.GetLowStock: %w", err)
	}
	defer rows.Close()

	var results []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Quantity, &p.Price, &p.Category,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("reports.GetLowStock scan: %w", err)
		}
		results = append(results, &p)
	}
	return results, rows.Err()
}

// GetDashboardCounts calcula los conteos del dashboard al momento de la llamada.
func (r *ReportRepo) GetDashboardCounts(ctx context.Context, companyID string, lowStockThreshold int, recentSince time.Time) (repository.DashboardCounts, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM products WHERE company_id = $1)                              AS total_products,
	    (SELECT COUNT(*) FROM transactions t JOIN products p ON p.id = t.product_id
	     WHERE p.company_id = $1)                                                          AS total_transactions,
	    (SELECT COUNT(*) FROM products WHERE company_id = $1 AND quantity <= $2)           AS low_stock_items,
	    (SELECT COUNT(*) FROM transactions t JOIN products p ON p.id = t.product_id
	     WHERE p.company_id = $1 AND t.created_at >= $3)                                   AS recent_transactions`

	var counts repository.DashboardCounts
	err := r.pool.QueryRow(ctx, query, companyID, lowStockThreshold, recentSince).Scan(
		&counts.TotalProducts, &counts.TotalTransactions,
		&counts.LowStockItems, &counts.RecentTransactions,
	)
	if err != nil {
		return repository.DashboardCounts{}, fmt.Errorf("reports.GetDashboardCounts: %w", err)
	}
	return counts, nil
}

// GetProductValues devuelve cantidad y precio de cada producto de la empresa
// para valorizar el stock en el use case.
func (r *ReportRepo) GetProductValues(ctx context.Context, companyID string) ([]repository.ProductValue, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT quantity, price FROM products WHERE company_id = $1`, companyID)
	if err != nil {
		return nil, fmt.Errorf("reports.GetProductValues: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductValue
	for rows.Next() {
		var v repository.ProductValue
		if err := rows.Scan(&v.Quantity, &v.Price); err != nil {
			return nil, fmt.Errorf("reports.GetProductValues scan: %w", err)
		}
		results = append(results, v)
	}
	return results, rows.Err()
}

// GetUserActivity cuenta transacciones por usuario, descendente por conteo.
func (r *ReportRepo) GetUserActivity(ctx context.Context, companyID string) ([]repository.UserActivity, error) {
	const query = `
	SELECT u.id, u.username, u.role, COUNT(t.id) AS transaction_count
	FROM transactions t
	JOIN users u ON u.id = t.user_id
	WHERE u.company_id = $1
	GROUP BY u.id, u.username, u.role
	ORDER BY transaction_count DESC`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("reports.GetUserActivity: %w", err)
	}
	defer rows.Close()

	var results []repository.UserActivity
	for rows.Next() {
		var row repository.UserActivity
		if err := rows.Scan(&row.UserID, &row.Username, &row.Role, &row.TransactionCount); err != nil {
			return nil, fmt.Errorf("reports.GetUserActivity scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
