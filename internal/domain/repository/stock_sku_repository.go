package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ecomlabs/readiness-api/internal/domain/entity"
)

// StockSkuRepository define el puerto de lectura del catálogo de SKUs.
// El motor solo lee; la única escritura es la actualización del agregado
// QuantityOnHand tras un decremento.
type StockSkuRepository interface {
	// GetBySKU devuelve el SKU de stock o nil si no existe en el catálogo.
	GetBySKU(ctx context.Context, orgID, sku string) (*entity.StockSKU, error)

	// ListBySKUs devuelve en lote los SKUs existentes entre los pedidos.
	// Un SKU ausente del resultado no está registrado en el catálogo.
	ListBySKUs(ctx context.Context, orgID string, skus []string) ([]*entity.StockSKU, error)

	// UpdateQuantityOnHand reescribe el agregado del SKU (suma de ubicaciones).
	// Best-effort bajo decrementos concurrentes multi-ubicación; nunca gatea
	// un decremento (eso lo hace la fila por ubicación).
	UpdateQuantityOnHand(ctx context.Context, orgID, sku string, qty decimal.Decimal) error
}
