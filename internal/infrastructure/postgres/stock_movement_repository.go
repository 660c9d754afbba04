package postgres

import (
	"context"
	"fmt"

	"github.com/ecomlabs/readiness-api/internal/domain/entity"
	"github.com/ecomlabs/readiness-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository sobre PostgreSQL
// (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create guarda un registro en el journal de movimientos.
func (r *StockMovementRepo) Create(ctx context.Context, mov *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, transaction_id, org_id, sku, location_id, type, quantity, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		mov.ID, mov.TransactionID, mov.OrgID, mov.SKU, mov.LocationID,
		mov.Type, mov.Quantity, mov.Date, mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}
