package entity

import (
	"github.com/shopspring/decimal"

	"github.com/ecomlabs/readiness-api/internal/domain"
)

// ResolutionResult resultado transitorio de resolver una línea de pedido:
// mapping aplicado, estados calculados y diagnósticos legibles. Se recalcula
// completo en cada llamada; todo el estado persistente vive en las tablas.
type ResolutionResult struct {
	OrderSKU          string
	Mapped            bool
	StockSKU          *string
	KitSKU            *string
	UnitMultiplier    decimal.Decimal
	FulfillmentStatus domain.FulfillmentStatus
	SupplyStatus      domain.SupplyStatus
	CombinedStatus    domain.CombinedStatus
	LocationID        *string
	LocationName      string
	Diagnostics       []string
	// Err falla de almacenamiento de este ítem, con el SKU afectado
	// (*domain.StorageError). No aborta a los ítems hermanos del lote.
	Err error
}

// InsumoShortage detalle de un insumo requerido con stock insuficiente.
type InsumoShortage struct {
	InsumoSKU string
	Required  decimal.Decimal
	Available decimal.Decimal
}

// SupplyResult resultado de validar los insumos de un SKU de stock.
type SupplyResult struct {
	StockSKU     string
	Status       domain.SupplyStatus
	Missing      []string // insumos referenciados ausentes del catálogo
	Short        []InsumoShortage
	LocationName string // solo en la variante por ubicación
}

// ComponentShortage detalle de un componente de kit con stock insuficiente
// en la ubicación consultada.
type ComponentShortage struct {
	ComponentSKU string
	Required     decimal.Decimal
	Available    decimal.Decimal
}
