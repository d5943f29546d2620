package dto

import "github.com/shopspring/decimal"

// StockMovementDTO un segmento del reporte IN vs OUT (formato para gráficas).
type StockMovementDTO struct {
	Name  string `json:"name"` // "Stock IN" | "Stock OUT"
	Value int    `json:"value"`
}

// TopProductDTO producto con su volumen total de movimiento.
type TopProductDTO struct {
	Name      string `json:"name"`
	Movements int    `json:"movements"`
}

// TransactionsByDateDTO conteo de transacciones de un día.
type TransactionsByDateDTO struct {
	Date         string `json:"date"` // YYYY-MM-DD (UTC)
	Transactions int    `json:"transactions"`
}

// DashboardSummaryDTO resumen del dashboard, calculado al momento de la llamada.
type DashboardSummaryDTO struct {
	TotalProducts      int             `json:"totalProducts"`
	TotalTransactions  int             `json:"totalTransactions"`
	LowStockItems      int             `json:"lowStockItems"`
	RecentTransactions int             `json:"recentTransactions"`
	TotalStockValue    decimal.Decimal `json:"totalStockValue"` // redondeado a 2 decimales
}

// UserActivityDTO conteo de transacciones por usuario.
type UserActivityDTO struct {
	Username         string `json:"username"`
	Role             string `json:"role"`
	TransactionCount int    `json:"transactionCount"`
}
