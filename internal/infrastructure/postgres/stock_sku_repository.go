package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ecomlabs/readiness-api/internal/domain/entity"
	"github.com/ecomlabs/readiness-api/internal/domain/repository"
)

var _ repository.StockSkuRepository = (*StockSkuRepo)(nil)

// StockSkuRepo implementación de StockSkuRepository sobre PostgreSQL
// (usable con pool o tx).
type StockSkuRepo struct {
	q Querier
}

// NewStockSkuRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockSkuRepository(q Querier) *StockSkuRepo {
	return &StockSkuRepo{q: q}
}

const stockSkuColumns = `id, org_id, sku, name, active, quantity_on_hand, minimum_quantity, created_at, updated_at`

// GetBySKU obtiene un SKU del catálogo por código, o nil si no existe.
func (r *StockSkuRepo) GetBySKU(ctx context.Context, orgID, sku string) (*entity.StockSKU, error) {
	query := `
		SELECT ` + stockSkuColumns + `
		FROM stock_skus WHERE org_id = $1 AND sku = $2`
	var s entity.StockSKU
	err := r.q.QueryRow(ctx, query, orgID, sku).Scan(
		&s.ID, &s.OrgID, &s.SKU, &s.Name, &s.Active,
		&s.QuantityOnHand, &s.MinimumQuantity, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock sku: %w", err)
	}
	return &s, nil
}

// ListBySKUs obtiene en lote los SKUs existentes entre los pedidos.
func (r *StockSkuRepo) ListBySKUs(ctx context.Context, orgID string, skus []string) ([]*entity.StockSKU, error) {
	query := `
		SELECT ` + stockSkuColumns + `
		FROM stock_skus WHERE org_id = $1 AND sku = ANY($2)`
	rows, err := r.q.Query(ctx, query, orgID, skus)
	if err != nil {
		return nil, fmt.Errorf("list stock skus: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockSKU
	for rows.Next() {
		var s entity.StockSKU
		if err := rows.Scan(&s.ID, &s.OrgID, &s.SKU, &s.Name, &s.Active,
			&s.QuantityOnHand, &s.MinimumQuantity, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock sku: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateQuantityOnHand reescribe el agregado del SKU (suma de ubicaciones).
func (r *StockSkuRepo) UpdateQuantityOnHand(ctx context.Context, orgID, sku string, qty decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE stock_skus SET quantity_on_hand = $3, updated_at = now() WHERE org_id = $1 AND sku = $2`,
		orgID, sku, qty,
	)
	if err != nil {
		return fmt.Errorf("update quantity on hand: %w", err)
	}
	return nil
}
