package repository

import (
	"context"

	"github.com/ecomlabs/readiness-api/internal/domain/entity"
)

// CompositionRepository define el puerto para la lista de materiales de kits.
type CompositionRepository interface {
	// ListByParent devuelve los componentes del SKU padre. Con locationID no
	// nil devuelve solo la receta de esa ubicación; lista vacía significa
	// "sin composición ahí" (un SKU puede ser kit en A y simple en B).
	ListByParent(ctx context.Context, orgID, parentSKU string, locationID *string) ([]*entity.ComponentRow, error)
}

// InsumoCompositionRepository define el puerto para insumos por producto.
type InsumoCompositionRepository interface {
	// ListByStockSKU devuelve las filas activas de insumos del producto.
	ListByStockSKU(ctx context.Context, orgID, stockSKU string) ([]*entity.InsumoComposition, error)
}
