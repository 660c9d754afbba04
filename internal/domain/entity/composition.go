package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponentRow una línea de la composición (lista de materiales) de un SKU
// padre: cuántas unidades del componente consume cada unidad del padre.
// LocationID nil = receta global; no nil = receta definida solo para esa
// ubicación. Un padre sin filas para la ubicación consultada NO es un kit de
// costo cero: es "sin composición en esta ubicación".
type ComponentRow struct {
	ID              string
	OrgID           string
	ParentSKU       string
	ComponentSKU    string
	LocationID      *string
	QuantityPerUnit decimal.Decimal
	CreatedAt       time.Time
}

// InsumoComposition asocia un insumo (etiqueta, empaque) a un SKU de producto.
// El insumo se consume exactamente una vez por línea de pedido, sin importar
// la cantidad pedida; Quantity es 1 por convención.
type InsumoComposition struct {
	ID        string
	OrgID     string
	StockSKU  string
	InsumoSKU string
	Quantity  decimal.Decimal
	Active    bool
	CreatedAt time.Time
}
