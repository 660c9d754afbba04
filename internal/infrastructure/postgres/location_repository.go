package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ecomlabs/readiness-api/internal/domain/entity"
	"github.com/ecomlabs/readiness-api/internal/domain/repository"
)

var _ repository.StockLocationRepository = (*StockLocationRepo)(nil)

// StockLocationRepo implementación de StockLocationRepository sobre PostgreSQL.
type StockLocationRepo struct {
	q Querier
}

// NewStockLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLocationRepository(q Querier) *StockLocationRepo {
	return &StockLocationRepo{q: q}
}

// GetByID obtiene una ubicación por ID, o nil si no existe.
func (r *StockLocationRepo) GetByID(ctx context.Context, orgID, id string) (*entity.StockLocation, error) {
	query := `
		SELECT id, org_id, name, created_at, updated_at
		FROM stock_locations WHERE org_id = $1 AND id = $2`
	var loc entity.StockLocation
	err := r.q.QueryRow(ctx, query, orgID, id).Scan(
		&loc.ID, &loc.OrgID, &loc.Name, &loc.CreatedAt, &loc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock location: %w", err)
	}
	return &loc, nil
}
