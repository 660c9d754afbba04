package readiness

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ecomlabs/readiness-api/internal/domain"
	"github.com/ecomlabs/readiness-api/internal/domain/entity"
	"github.com/ecomlabs/readiness-api/internal/domain/repository"
)

// SupplyValidator valida los insumos (etiquetas, empaques) de un SKU de
// stock. La regla de negocio que lo define: cada insumo se consume exactamente
// una vez por línea de pedido, sin importar la cantidad pedida; el
// requerimiento nunca escala con las unidades.
type SupplyValidator struct {
	insumos       repository.InsumoCompositionRepository
	skus          repository.StockSkuRepository
	locationStock repository.LocationStockRepository
	locations     repository.StockLocationRepository
	limit         int
}

// NewSupplyValidator construye el validador. limit acota la concurrencia de
// ValidateBatch (conexiones del pool).
func NewSupplyValidator(
	insumos repository.InsumoCompositionRepository,
	skus repository.StockSkuRepository,
	locationStock repository.LocationStockRepository,
	locations repository.StockLocationRepository,
	limit int,
) *SupplyValidator {
	if limit <= 0 {
		limit = 8
	}
	return &SupplyValidator{
		insumos:       insumos,
		skus:          skus,
		locationStock: locationStock,
		locations:     locations,
		limit:         limit,
	}
}

// Validate calcula el estado de insumos de un SKU de stock. Sin locationID la
// disponibilidad se mide contra el agregado del catálogo; con locationID,
// contra el stock de esa ubicación (y el resultado lleva su nombre).
func (v *SupplyValidator) Validate(ctx context.Context, orgID, stockSKU string, locationID *string) (*entity.SupplyResult, error) {
	result := &entity.SupplyResult{StockSKU: stockSKU}
	if locationID != nil {
		if loc, err := v.locations.GetByID(ctx, orgID, *locationID); err == nil && loc != nil {
			result.LocationName = loc.Name
		}
	}

	rows, err := v.insumos.ListByStockSKU(ctx, orgID, stockSKU)
	if err != nil {
		return nil, domain.NewStorageError(stockSKU, err)
	}
	// Producto sin insumos asociados: válido, no es una falla.
	if len(rows) == 0 {
		result.Status = domain.SupplyNoInsumoMapping
		return result, nil
	}

	insumoSKUs := make([]string, 0, len(rows))
	for _, row := range rows {
		insumoSKUs = append(insumoSKUs, row.InsumoSKU)
	}

	catalog, err := v.skus.ListBySKUs(ctx, orgID, insumoSKUs)
	if err != nil {
		return nil, domain.NewStorageError(stockSKU, err)
	}
	bySKU := make(map[string]*entity.StockSKU, len(catalog))
	for _, s := range catalog {
		bySKU[s.SKU] = s
	}
	for _, row := range rows {
		if _, ok := bySKU[row.InsumoSKU]; !ok {
			result.Missing = append(result.Missing, row.InsumoSKU)
		}
	}
	if len(result.Missing) > 0 {
		result.Status = domain.SupplyInsumoNotRegistered
		return result, nil
	}

	onHand, err := v.insumoOnHand(ctx, orgID, insumoSKUs, bySKU, locationID)
	if err != nil {
		return nil, domain.NewStorageError(stockSKU, err)
	}
	for _, row := range rows {
		available := onHand[row.InsumoSKU]
		// Requerido una vez por línea de pedido (Quantity, por convención 1),
		// jamás multiplicado por las unidades pedidas.
		if available.LessThan(row.Quantity) {
			result.Short = append(result.Short, entity.InsumoShortage{
				InsumoSKU: row.InsumoSKU,
				Required:  row.Quantity,
				Available: available,
			})
		}
	}
	if len(result.Short) > 0 {
		result.Status = domain.SupplyInsumoPending
		return result, nil
	}
	result.Status = domain.SupplyReady
	return result, nil
}

func (v *SupplyValidator) insumoOnHand(ctx context.Context, orgID string, insumoSKUs []string, bySKU map[string]*entity.StockSKU, locationID *string) (map[string]decimal.Decimal, error) {
	if locationID == nil {
		out := make(map[string]decimal.Decimal, len(bySKU))
		for sku, row := range bySKU {
			out[sku] = row.QuantityOnHand
		}
		return out, nil
	}
	return v.locationStock.GetManyAtLocation(ctx, orgID, insumoSKUs, *locationID)
}

// ValidateBatch valida varios SKUs en paralelo (concurrencia acotada, sin
// dependencia de orden entre SKUs). Las fallas de almacenamiento por ítem no
// abortan a los hermanos: los SKUs resueltos llegan en el mapa y los fallidos
// se acumulan en el error devuelto.
func (v *SupplyValidator) ValidateBatch(ctx context.Context, orgID string, stockSKUs []string, locationID *string) (map[string]*entity.SupplyResult, error) {
	results := make([]*entity.SupplyResult, len(stockSKUs))
	var (
		mu       sync.Mutex
		itemErrs []error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.limit)
	for i, sku := range stockSKUs {
		i, sku := i, sku
		g.Go(func() error {
			res, err := v.Validate(gctx, orgID, sku, locationID)
			if err != nil {
				mu.Lock()
				itemErrs = append(itemErrs, err)
				mu.Unlock()
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]*entity.SupplyResult, len(stockSKUs))
	for _, res := range results {
		if res != nil {
			out[res.StockSKU] = res
		}
	}
	return out, errors.Join(itemErrs...)
}
