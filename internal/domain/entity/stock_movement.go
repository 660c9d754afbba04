package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento registrados en el journal de stock.
const (
	MovementTypeOUT = "OUT"
)

// StockMovement registro de auditoría de un movimiento de stock en una
// ubicación. Los decrementos de un mismo pedido comparten TransactionID.
type StockMovement struct {
	ID            string
	TransactionID string
	OrgID         string
	SKU           string
	LocationID    string
	Type          string
	Quantity      decimal.Decimal // negativa para salidas
	Date          time.Time
	CreatedAt     time.Time
}
