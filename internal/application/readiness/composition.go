package readiness

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ecomlabs/readiness-api/internal/domain"
	"github.com/ecomlabs/readiness-api/internal/domain/entity"
	"github.com/ecomlabs/readiness-api/internal/domain/repository"
)

// CompositionResolver determina si un SKU de stock es un kit (lista de
// materiales) y si sus componentes alcanzan en una ubicación. La receta puede
// existir en una ubicación y no en otra: el mismo SKU puede ser kit en A y
// simple en B.
type CompositionResolver struct {
	compositions repository.CompositionRepository
	skus         repository.StockSkuRepository
	ledger       *StockLedger
}

// NewCompositionResolver construye el resolver de composiciones.
func NewCompositionResolver(
	compositions repository.CompositionRepository,
	skus repository.StockSkuRepository,
	ledger *StockLedger,
) *CompositionResolver {
	return &CompositionResolver{compositions: compositions, skus: skus, ledger: ledger}
}

// HasComposition devuelve true solo si existe al menos una fila de composición
// para el padre en la ubicación consultada. Padre ausente del catálogo de
// composiciones y padre sin filas para esa ubicación reportan ambos false.
func (c *CompositionResolver) HasComposition(ctx context.Context, orgID, parentSKU string, locationID *string) (bool, error) {
	rows, err := c.compositions.ListByParent(ctx, orgID, parentSKU, locationID)
	if err != nil {
		return false, domain.NewStorageError(parentSKU, err)
	}
	return len(rows) > 0, nil
}

// GetComponents devuelve los componentes del padre en la ubicación consultada.
func (c *CompositionResolver) GetComponents(ctx context.Context, orgID, parentSKU string, locationID *string) ([]*entity.ComponentRow, error) {
	rows, err := c.compositions.ListByParent(ctx, orgID, parentSKU, locationID)
	if err != nil {
		return nil, domain.NewStorageError(parentSKU, err)
	}
	return rows, nil
}

// ComponentStockSufficient verifica que cada componente del kit cubra
// quantityPerUnit * orderedUnits. Con locationID la verificación es contra el
// stock de esa ubicación; sin ella, contra el agregado del catálogo. Corta en
// el primer componente insuficiente y lo reporta para diagnóstico.
func (c *CompositionResolver) ComponentStockSufficient(ctx context.Context, orgID, parentSKU string, locationID *string, orderedUnits decimal.Decimal) (bool, []entity.ComponentShortage, error) {
	rows, err := c.compositions.ListByParent(ctx, orgID, parentSKU, locationID)
	if err != nil {
		return false, nil, domain.NewStorageError(parentSKU, err)
	}
	for _, row := range rows {
		required := row.QuantityPerUnit.Mul(orderedUnits)
		available, err := c.componentOnHand(ctx, orgID, row.ComponentSKU, locationID)
		if err != nil {
			return false, nil, err
		}
		if available.LessThan(required) {
			shortage := entity.ComponentShortage{
				ComponentSKU: row.ComponentSKU,
				Required:     required,
				Available:    available,
			}
			return false, []entity.ComponentShortage{shortage}, nil
		}
	}
	return true, nil, nil
}

func (c *CompositionResolver) componentOnHand(ctx context.Context, orgID, sku string, locationID *string) (decimal.Decimal, error) {
	if locationID != nil {
		res, err := c.ledger.CheckAvailability(ctx, orgID, sku, *locationID, decimal.Zero)
		if err != nil {
			return decimal.Zero, err
		}
		return res.OnHand, nil
	}
	row, err := c.skus.GetBySKU(ctx, orgID, sku)
	if err != nil {
		return decimal.Zero, domain.NewStorageError(sku, err)
	}
	if row == nil {
		return decimal.Zero, nil
	}
	return row.QuantityOnHand, nil
}
