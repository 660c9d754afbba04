package repository

import (
	"context"

	"github.com/ecomlabs/readiness-api/internal/domain/entity"
)

// MappingRepository define el puerto para mappings OrderSKU -> StockSKU.
type MappingRepository interface {
	// FindActiveByOrderSKUs busca en un solo lote los mappings activos de los
	// OrderSKUs dados. Los no encontrados simplemente no aparecen en el resultado.
	FindActiveByOrderSKUs(ctx context.Context, orgID string, orderSKUs []string) ([]*entity.SkuMapping, error)

	// UpsertPlaceholder inserta un mapping con destinos nulos para un OrderSKU
	// nunca visto. Idempotente: si ya existe una fila para ese OrderSKU es un
	// no-op (ON CONFLICT DO NOTHING), de modo que lotes concurrentes que ven
	// el mismo SKU por primera vez no duplican filas.
	UpsertPlaceholder(ctx context.Context, m *entity.SkuMapping) error
}
