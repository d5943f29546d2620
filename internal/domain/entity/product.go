package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario de una empresa.
// Quantity la mantiene el motor de transacciones: siempre es la suma de las
// entradas menos las salidas registradas, salvo edición manual (escape hatch
// deliberado para correcciones, no reconciliada contra el ledger).
type Product struct {
	ID        string
	CompanyID string
	Name      string          // 1–100 caracteres
	Quantity  int             // entero >= 0
	Price     decimal.Decimal // >= 0, 2 decimales
	Category  string          // 1–50 caracteres
	CreatedAt time.Time
	UpdatedAt time.Time
}
