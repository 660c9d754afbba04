package postgres

import (
	"context"
	"fmt"

	"github.com/ecomlabs/readiness-api/internal/domain/entity"
	"github.com/ecomlabs/readiness-api/internal/domain/repository"
)

var _ repository.MappingRepository = (*MappingRepo)(nil)

// MappingRepo implementación de MappingRepository sobre PostgreSQL
// (usable con pool o tx).
type MappingRepo struct {
	q Querier
}

// NewMappingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMappingRepository(q Querier) *MappingRepo {
	return &MappingRepo{q: q}
}

// FindActiveByOrderSKUs busca en un solo lote los mappings activos.
func (r *MappingRepo) FindActiveByOrderSKUs(ctx context.Context, orgID string, orderSKUs []string) ([]*entity.SkuMapping, error) {
	query := `
		SELECT id, org_id, order_sku, stock_sku, kit_sku, unit_multiplier, active, auto_detected, created_at, updated_at
		FROM sku_mappings WHERE org_id = $1 AND order_sku = ANY($2) AND active = true`
	rows, err := r.q.Query(ctx, query, orgID, orderSKUs)
	if err != nil {
		return nil, fmt.Errorf("find active mappings: %w", err)
	}
	defer rows.Close()
	var list []*entity.SkuMapping
	for rows.Next() {
		var m entity.SkuMapping
		if err := rows.Scan(&m.ID, &m.OrgID, &m.OrderSKU, &m.StockSKU, &m.KitSKU,
			&m.UnitMultiplier, &m.Active, &m.AutoDetected, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan mapping: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// UpsertPlaceholder inserta un mapping con destinos nulos para un OrderSKU
// nunca visto. ON CONFLICT DO NOTHING lo hace idempotente frente a lotes
// concurrentes que ven el mismo SKU por primera vez.
func (r *MappingRepo) UpsertPlaceholder(ctx context.Context, m *entity.SkuMapping) error {
	query := `
		INSERT INTO sku_mappings (id, org_id, order_sku, stock_sku, kit_sku, unit_multiplier, active, auto_detected, created_at, updated_at)
		VALUES ($1, $2, $3, NULL, NULL, $4, $5, $6, $7, $8)
		ON CONFLICT (org_id, order_sku) DO NOTHING`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.OrgID, m.OrderSKU, m.UnitMultiplier, m.Active, m.AutoDetected, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		// La carrera de clave duplicada también cuenta como "ya existe".
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("upsert mapping placeholder: %w", err)
	}
	return nil
}
