package repository

import (
	"context"

	"github.com/ecomlabs/readiness-api/internal/domain/entity"
)

// StockMovementRepository define el puerto del journal de movimientos.
type StockMovementRepository interface {
	Create(ctx context.Context, mov *entity.StockMovement) error
}
