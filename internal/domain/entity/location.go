package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLocation representa una ubicación física o lógica que particiona el stock.
type StockLocation struct {
	ID        string
	OrgID     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LocationStock representa el stock actual de un SKU en una ubicación
// (clave sku+ubicación). Nunca se crea con cantidad negativa; solo lo mutan
// decrementos/incrementos.
type LocationStock struct {
	OrgID      string
	SKU        string
	LocationID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
