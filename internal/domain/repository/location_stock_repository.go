package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ecomlabs/readiness-api/internal/domain/entity"
)

// LocationStockRepository define el puerto para el stock por sku+ubicación.
type LocationStockRepository interface {
	// Get devuelve la fila de stock o nil si el SKU no está abastecido en esa
	// ubicación (caso normal, no excepcional).
	Get(ctx context.Context, orgID, sku, locationID string) (*entity.LocationStock, error)

	// GetManyAtLocation devuelve las cantidades de varios SKUs en una
	// ubicación; los SKUs sin fila no aparecen en el mapa.
	GetManyAtLocation(ctx context.Context, orgID string, skus []string, locationID string) (map[string]decimal.Decimal, error)

	// DecrementGuarded resta qty con un update condicional
	// (WHERE quantity >= qty) y devuelve la cantidad resultante. Si el update
	// no afecta filas devuelve domain.ErrInsufficientStock: dos decrementos
	// concurrentes sobre la misma fila nunca la dejan negativa.
	DecrementGuarded(ctx context.Context, orgID, sku, locationID string, qty decimal.Decimal) (decimal.Decimal, error)

	// SumBySKU suma las cantidades del SKU sobre todas sus ubicaciones.
	SumBySKU(ctx context.Context, orgID, sku string) (decimal.Decimal, error)
}

// StockLocationRepository define el puerto de lectura de ubicaciones.
type StockLocationRepository interface {
	GetByID(ctx context.Context, orgID, id string) (*entity.StockLocation, error)
}
