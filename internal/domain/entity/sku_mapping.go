package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SkuMapping correspondencia entre el SKU como llega del canal de venta
// (OrderSKU) y el SKU interno de stock. Se crea perezosamente con destinos
// nulos la primera vez que se observa un OrderSKU desconocido: queda
// "estacionado" para que catálogo lo complete, no es un error.
// Invariante: OrderSKU es único entre los mappings activos de una organización.
type SkuMapping struct {
	ID             string
	OrgID          string
	OrderSKU       string
	StockSKU       *string // nil mientras el mapping esté incompleto
	KitSKU         *string
	UnitMultiplier decimal.Decimal // unidades de stock por unidad pedida; 1 por defecto
	Active         bool
	AutoDetected   bool // creado por el motor al ver el OrderSKU por primera vez
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasTarget indica si el mapping ya apunta a un SKU de stock.
func (m *SkuMapping) HasTarget() bool {
	return m.StockSKU != nil && *m.StockSKU != ""
}
