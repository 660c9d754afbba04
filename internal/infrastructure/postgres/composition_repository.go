package postgres

import (
	"context"
	"fmt"

	"github.com/ecomlabs/readiness-api/internal/domain/entity"
	"github.com/ecomlabs/readiness-api/internal/domain/repository"
)

var _ repository.CompositionRepository = (*CompositionRepo)(nil)

// CompositionRepo implementación de CompositionRepository sobre PostgreSQL
// (usable con pool o tx).
type CompositionRepo struct {
	q Querier
}

// NewCompositionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompositionRepository(q Querier) *CompositionRepo {
	return &CompositionRepo{q: q}
}

// ListByParent devuelve los componentes del SKU padre. Con locationID no nil
// devuelve solo la receta de esa ubicación; con nil, la receta global.
func (r *CompositionRepo) ListByParent(ctx context.Context, orgID, parentSKU string, locationID *string) ([]*entity.ComponentRow, error) {
	query := `
		SELECT id, org_id, parent_sku, component_sku, location_id, quantity_per_unit, created_at
		FROM compositions
		WHERE org_id = $1 AND parent_sku = $2 AND location_id IS NOT DISTINCT FROM $3`
	rows, err := r.q.Query(ctx, query, orgID, parentSKU, locationID)
	if err != nil {
		return nil, fmt.Errorf("list composition: %w", err)
	}
	defer rows.Close()
	var list []*entity.ComponentRow
	for rows.Next() {
		var c entity.ComponentRow
		if err := rows.Scan(&c.ID, &c.OrgID, &c.ParentSKU, &c.ComponentSKU,
			&c.LocationID, &c.QuantityPerUnit, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan composition: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

var _ repository.InsumoCompositionRepository = (*InsumoCompositionRepo)(nil)

// InsumoCompositionRepo implementación de InsumoCompositionRepository sobre
// PostgreSQL.
type InsumoCompositionRepo struct {
	q Querier
}

// NewInsumoCompositionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInsumoCompositionRepository(q Querier) *InsumoCompositionRepo {
	return &InsumoCompositionRepo{q: q}
}

// ListByStockSKU devuelve las filas activas de insumos del producto.
func (r *InsumoCompositionRepo) ListByStockSKU(ctx context.Context, orgID, stockSKU string) ([]*entity.InsumoComposition, error) {
	query := `
		SELECT id, org_id, stock_sku, insumo_sku, quantity, active, created_at
		FROM insumo_compositions
		WHERE org_id = $1 AND stock_sku = $2 AND active = true`
	rows, err := r.q.Query(ctx, query, orgID, stockSKU)
	if err != nil {
		return nil, fmt.Errorf("list insumo composition: %w", err)
	}
	defer rows.Close()
	var list []*entity.InsumoComposition
	for rows.Next() {
		var ic entity.InsumoComposition
		if err := rows.Scan(&ic.ID, &ic.OrgID, &ic.StockSKU, &ic.InsumoSKU,
			&ic.Quantity, &ic.Active, &ic.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan insumo composition: %w", err)
		}
		list = append(list, &ic)
	}
	return list, rows.Err()
}
