package dto

import "time"

// CreateTransactionRequest registro de un movimiento de stock.
type CreateTransactionRequest struct {
	ProductID string `json:"productId"`
	Action    string `json:"action"` // IN | OUT
	Quantity  int    `json:"quantity"`
}

// TransactionUserDTO resumen del usuario que registró la transacción.
type TransactionUserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// TransactionProductDTO resumen del producto movido.
type TransactionProductDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// TransactionResponse transacción enriquecida. User o Product pueden faltar si
// el padre fue eliminado (referencia histórica colgante).
type TransactionResponse struct {
	ID        string                 `json:"id"`
	ProductID string                 `json:"productId"`
	UserID    string                 `json:"userId"`
	Action    string                 `json:"action"`
	Quantity  int                    `json:"quantity"`
	CreatedAt time.Time              `json:"created_at"`
	User      *TransactionUserDTO    `json:"user,omitempty"`
	Product   *TransactionProductDTO `json:"product,omitempty"`
}
