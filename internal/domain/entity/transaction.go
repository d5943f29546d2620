package entity

import "time"

// Acciones de una transacción de stock.
const (
	ActionIN  = "IN"  // entrada: suma al stock
	ActionOUT = "OUT" // salida: resta del stock
)

// ValidAction indica si la acción es IN u OUT.
func ValidAction(a string) bool {
	return a == ActionIN || a == ActionOUT
}

// Transaction es un movimiento de stock inmutable (append-only: nunca se
// actualiza ni se borra por ninguna operación expuesta). ProductID y UserID
// son referencias blandas: borrar el padre no borra el historial.
type Transaction struct {
	ID        string
	ProductID string
	UserID    string
	Action    string // IN | OUT
	Quantity  int    // >= 1
	CreatedAt time.Time
}

// UserSummary datos mínimos del usuario para enriquecer una transacción.
type UserSummary struct {
	ID       string
	Username string
	Role     Role
}

// ProductSummary datos mínimos del producto para enriquecer una transacción.
type ProductSummary struct {
	ID       string
	Name     string
	Category string
}

// TransactionDetail transacción enriquecida con resúmenes de usuario y
// producto. User o Product pueden ser nil si el padre fue eliminado.
type TransactionDetail struct {
	Transaction
	User    *UserSummary
	Product *ProductSummary
}
