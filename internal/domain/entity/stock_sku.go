package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockSKU representa un SKU del catálogo interno (multi-ubicación).
// QuantityOnHand es el agregado sobre todas las ubicaciones; el stock real que
// gatea decrementos vive por ubicación en LocationStock.
type StockSKU struct {
	ID              string
	OrgID           string
	SKU             string // código único por organización
	Name            string
	Active          bool
	QuantityOnHand  decimal.Decimal // suma de LocationStock; eventual bajo concurrencia
	MinimumQuantity decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
