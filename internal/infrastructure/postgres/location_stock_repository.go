package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ecomlabs/readiness-api/internal/domain"
	"github.com/ecomlabs/readiness-api/internal/domain/entity"
	"github.com/ecomlabs/readiness-api/internal/domain/repository"
)

var _ repository.LocationStockRepository = (*LocationStockRepo)(nil)

// LocationStockRepo implementación de LocationStockRepository sobre PostgreSQL
// (usable con pool o tx).
type LocationStockRepo struct {
	q Querier
}

// NewLocationStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationStockRepository(q Querier) *LocationStockRepo {
	return &LocationStockRepo{q: q}
}

// Get obtiene la fila de stock del SKU en la ubicación, o nil si no existe.
func (r *LocationStockRepo) Get(ctx context.Context, orgID, sku, locationID string) (*entity.LocationStock, error) {
	query := `
		SELECT org_id, sku, location_id, quantity, updated_at
		FROM location_stock WHERE org_id = $1 AND sku = $2 AND location_id = $3`
	var ls entity.LocationStock
	err := r.q.QueryRow(ctx, query, orgID, sku, locationID).Scan(
		&ls.OrgID, &ls.SKU, &ls.LocationID, &ls.Quantity, &ls.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location stock: %w", err)
	}
	return &ls, nil
}

// GetManyAtLocation obtiene las cantidades de varios SKUs en una ubicación.
// Los SKUs sin fila no aparecen en el mapa.
func (r *LocationStockRepo) GetManyAtLocation(ctx context.Context, orgID string, skus []string, locationID string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT sku, quantity
		FROM location_stock WHERE org_id = $1 AND location_id = $2 AND sku = ANY($3)`
	rows, err := r.q.Query(ctx, query, orgID, locationID, skus)
	if err != nil {
		return nil, fmt.Errorf("get location stock batch: %w", err)
	}
	defer rows.Close()
	out := make(map[string]decimal.Decimal, len(skus))
	for rows.Next() {
		var (
			sku string
			qty decimal.Decimal
		)
		if err := rows.Scan(&sku, &qty); err != nil {
			return nil, fmt.Errorf("scan location stock: %w", err)
		}
		out[sku] = qty
	}
	return out, rows.Err()
}

// DecrementGuarded resta qty con un update condicional a nivel de fila:
// WHERE quantity >= qty. Cero filas afectadas = stock insuficiente (dos
// decrementos concurrentes nunca dejan la fila negativa; el perdedor falla).
func (r *LocationStockRepo) DecrementGuarded(ctx context.Context, orgID, sku, locationID string, qty decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE location_stock
		SET quantity = quantity - $4, updated_at = now()
		WHERE org_id = $1 AND sku = $2 AND location_id = $3 AND quantity >= $4
		RETURNING quantity`
	var newQty decimal.Decimal
	err := r.q.QueryRow(ctx, query, orgID, sku, locationID, qty).Scan(&newQty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrInsufficientStock
		}
		return decimal.Zero, fmt.Errorf("decrement location stock: %w", err)
	}
	return newQty, nil
}

// SumBySKU suma las cantidades del SKU sobre todas sus ubicaciones.
func (r *LocationStockRepo) SumBySKU(ctx context.Context, orgID, sku string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM location_stock WHERE org_id = $1 AND sku = $2`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, orgID, sku).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum location stock: %w", err)
	}
	return sum, nil
}
