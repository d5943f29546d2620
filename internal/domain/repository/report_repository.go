package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockMovementTotals suma de cantidades IN vs OUT de la empresa.
type StockMovementTotals struct {
	StockIn  int
	StockOut int
}

// ProductMovement volumen de movimiento por producto (IN y OUT suman, no se netean).
type ProductMovement struct {
	ProductID string
	Name      string
	Movements int
}

// DateCount transacciones por día calendario (fecha UTC de creación).
type DateCount struct {
	Date  string // YYYY-MM-DD
	Count int
}

// UserActivity conteo de transacciones por usuario.
type UserActivity struct {
	UserID           string
	Username         string
	Role             entity.Role
	TransactionCount int
}

// DashboardCounts conteos del resumen del dashboard.
type DashboardCounts struct {
	TotalProducts      int
	TotalTransactions  int
	LowStockItems      int
	RecentTransactions int
}

// ProductValue cantidad y precio de un producto, para valorización del stock.
type ProductValue struct {
	Quantity int
	Price    decimal.Decimal
}

// ReportRepository define las consultas de lectura del agregador de reportes.
// Las implementaciones son read-only y siempre filtran por empresa.
type ReportRepository interface {
	GetStockMovements(ctx context.Context, companyID string) (StockMovementTotals, error)
	// GetTopProducts devuelve hasta limit productos por volumen de movimiento
	// descendente (empates en orden de aparición).
	GetTopProducts(ctx context.Context, companyID string, limit int) ([]ProductMovement, error)
	// GetTransactionsByDate agrupa por día UTC, ascendente. start/end nil = sin filtro.
	GetTransactionsByDate(ctx context.Context, companyID string, start, end *time.Time) ([]DateCount, error)
	GetLowStock(ctx context.Context, companyID string, threshold int) ([]*entity.Product, error)
	// GetDashboardCounts calcula los conteos al momento de la llamada (sin caché).
	GetDashboardCounts(ctx context.Context, companyID string, lowStockThreshold int, recentSince time.Time) (DashboardCounts, error)
	GetProductValues(ctx context.Context, companyID string) ([]ProductValue, error)
	GetUserActivity(ctx context.Context, companyID string) ([]UserActivity, error)
}
