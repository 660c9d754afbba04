package readiness

import (
	"context"

	"github.com/ecomlabs/readiness-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el decremento por ubicación, el
// recálculo del agregado y el registro del movimiento sean atómicos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.LocationStockRepository,
		skuRepo repository.StockSkuRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
