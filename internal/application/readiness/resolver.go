package readiness

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ecomlabs/readiness-api/internal/domain"
	"github.com/ecomlabs/readiness-api/internal/domain/entity"
	"github.com/ecomlabs/readiness-api/internal/domain/repository"
	"github.com/ecomlabs/readiness-api/pkg/logger"
)

// Resolver resuelve lotes de SKUs de pedido a un estado de preparación:
// mapping a SKU interno, existencia en catálogo, stock agregado, composición y
// stock de componentes en la ubicación, más el estado de insumos. Crea
// mappings placeholder para SKUs nunca vistos (quedan estacionados para que
// catálogo los complete).
type Resolver struct {
	mappings     repository.MappingRepository
	skus         repository.StockSkuRepository
	locations    repository.StockLocationRepository
	compositions *CompositionResolver
	supply       *SupplyValidator
	log          *logger.Logger
	limit        int
}

// NewResolver construye el resolver. limit acota la concurrencia por SKU.
func NewResolver(
	mappings repository.MappingRepository,
	skus repository.StockSkuRepository,
	locations repository.StockLocationRepository,
	compositions *CompositionResolver,
	supply *SupplyValidator,
	log *logger.Logger,
	limit int,
) *Resolver {
	if limit <= 0 {
		limit = 8
	}
	return &Resolver{
		mappings:     mappings,
		skus:         skus,
		locations:    locations,
		compositions: compositions,
		supply:       supply,
		log:          log,
		limit:        limit,
	}
}

// ResolveInput entrada de ResolveBatch. QtyBySKU trae la cantidad pedida por
// OrderSKU (1 si no viene). LocationID nil = verificación contra agregados.
type ResolveInput struct {
	OrgID      string
	OrderSKUs  []string
	LocationID *string
	QtyBySKU   map[string]decimal.Decimal
}

// ResolveBatch resuelve cada línea del lote de forma independiente y en
// paralelo acotado. Los resultados conservan el orden de entrada. Solo una
// falla que invalida el lote completo (p. ej. no poder leer los mappings)
// se devuelve como error; las fallas por ítem quedan en el resultado del ítem.
func (r *Resolver) ResolveBatch(ctx context.Context, in ResolveInput) ([]*entity.ResolutionResult, error) {
	if in.OrgID == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.OrderSKUs) == 0 {
		return []*entity.ResolutionResult{}, nil
	}
	start := time.Now()

	locationName := ""
	if in.LocationID != nil {
		if loc, err := r.locations.GetByID(ctx, in.OrgID, *in.LocationID); err == nil && loc != nil {
			locationName = loc.Name
		}
	}

	active, err := r.mappings.FindActiveByOrderSKUs(ctx, in.OrgID, in.OrderSKUs)
	if err != nil {
		return nil, domain.NewStorageError("", err)
	}
	byOrderSKU := make(map[string]*entity.SkuMapping, len(active))
	for _, m := range active {
		byOrderSKU[m.OrderSKU] = m
	}

	// Estaciona placeholders para SKUs nunca vistos. La fila recién creada
	// sigue resolviendo a UNMAPPED en esta misma llamada.
	placeholderErrs := make(map[string]error)
	for _, orderSKU := range in.OrderSKUs {
		if _, ok := byOrderSKU[orderSKU]; ok {
			continue
		}
		if _, done := placeholderErrs[orderSKU]; done {
			continue
		}
		placeholderErrs[orderSKU] = r.mappings.UpsertPlaceholder(ctx, newPlaceholder(in.OrgID, orderSKU))
	}

	results := make([]*entity.ResolutionResult, len(in.OrderSKUs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)
	for i, orderSKU := range in.OrderSKUs {
		i, orderSKU := i, orderSKU
		g.Go(func() error {
			res := r.resolveOne(gctx, in, orderSKU, byOrderSKU[orderSKU], locationName)
			if err := placeholderErrs[orderSKU]; err != nil {
				res.Diagnostics = append(res.Diagnostics,
					fmt.Sprintf("no se pudo crear el mapping placeholder: %v", err))
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	counts := make(map[domain.CombinedStatus]int)
	for _, res := range results {
		counts[res.CombinedStatus]++
	}
	ev := r.log.Info().
		Str("org_id", in.OrgID).
		Int("lines", len(in.OrderSKUs)).
		Dur("elapsed", time.Since(start))
	if in.LocationID != nil {
		ev = ev.Str("location_id", *in.LocationID)
	}
	for status, n := range counts {
		ev = ev.Int(string(status), n)
	}
	ev.Msg("lote de preparación resuelto")
	return results, nil
}

func newPlaceholder(orgID, orderSKU string) *entity.SkuMapping {
	now := time.Now()
	return &entity.SkuMapping{
		ID:             uuid.New().String(),
		OrgID:          orgID,
		OrderSKU:       orderSKU,
		UnitMultiplier: decimal.NewFromInt(1),
		Active:         true,
		AutoDetected:   true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (r *Resolver) resolveOne(ctx context.Context, in ResolveInput, orderSKU string, mapping *entity.SkuMapping, locationName string) *entity.ResolutionResult {
	res := &entity.ResolutionResult{
		OrderSKU:       orderSKU,
		UnitMultiplier: decimal.NewFromInt(1),
		LocationID:     in.LocationID,
		LocationName:   locationName,
	}

	if mapping == nil || !mapping.HasTarget() {
		res.FulfillmentStatus = domain.FulfillmentUnmapped
		res.SupplyStatus = domain.SupplyNoInsumoMapping
		res.CombinedStatus = domain.Combine(res.FulfillmentStatus, res.SupplyStatus)
		res.Diagnostics = append(res.Diagnostics,
			fmt.Sprintf("SKU de pedido %s sin mapping a SKU interno; pendiente de completar por catálogo", orderSKU))
		return res
	}

	res.Mapped = true
	res.StockSKU = mapping.StockSKU
	res.KitSKU = mapping.KitSKU
	if !mapping.UnitMultiplier.IsZero() {
		res.UnitMultiplier = mapping.UnitMultiplier
	}
	stockSKU := *mapping.StockSKU

	res.FulfillmentStatus = r.fulfillmentStatus(ctx, in, orderSKU, stockSKU, res)
	if res.Err != nil {
		return res
	}

	supplyRes, err := r.supply.Validate(ctx, in.OrgID, stockSKU, in.LocationID)
	if err != nil {
		res.Err = err
		res.Diagnostics = append(res.Diagnostics, err.Error())
		return res
	}
	res.SupplyStatus = supplyRes.Status
	for _, missing := range supplyRes.Missing {
		res.Diagnostics = append(res.Diagnostics,
			fmt.Sprintf("insumo %s no registrado en el catálogo", missing))
	}
	for _, short := range supplyRes.Short {
		res.Diagnostics = append(res.Diagnostics,
			fmt.Sprintf("insumo %s pendiente: necesario %s, disponible %s",
				short.InsumoSKU, short.Required.String(), short.Available.String()))
	}

	res.CombinedStatus = domain.Combine(res.FulfillmentStatus, res.SupplyStatus)
	return res
}

func (r *Resolver) fulfillmentStatus(ctx context.Context, in ResolveInput, orderSKU, stockSKU string, res *entity.ResolutionResult) domain.FulfillmentStatus {
	sku, err := r.skus.GetBySKU(ctx, in.OrgID, stockSKU)
	if err != nil {
		res.Err = domain.NewStorageError(stockSKU, err)
		res.Diagnostics = append(res.Diagnostics, res.Err.Error())
		return ""
	}
	if sku == nil || !sku.Active {
		res.Diagnostics = append(res.Diagnostics,
			fmt.Sprintf("SKU %s no existe o está inactivo en el catálogo", stockSKU))
		return domain.FulfillmentSkuNotRegistered
	}
	if !sku.QuantityOnHand.GreaterThan(decimal.Zero) {
		res.Diagnostics = append(res.Diagnostics,
			fmt.Sprintf("SKU %s sin stock agregado disponible", stockSKU))
		return domain.FulfillmentOutOfStock
	}

	has, err := r.compositions.HasComposition(ctx, in.OrgID, stockSKU, in.LocationID)
	if err != nil {
		res.Err = err
		res.Diagnostics = append(res.Diagnostics, err.Error())
		return ""
	}
	if !has {
		where := "global"
		if res.LocationName != "" {
			where = res.LocationName
		} else if in.LocationID != nil {
			where = *in.LocationID
		}
		// Hay stock pero la receta no está definida para esta ubicación:
		// estado bloqueado distinto de OUT_OF_STOCK, lo resuelve catálogo.
		res.Diagnostics = append(res.Diagnostics,
			fmt.Sprintf("SKU %s sin composición registrada (%s)", stockSKU, where))
		return domain.FulfillmentNoComposition
	}

	orderedQty := decimal.NewFromInt(1)
	if q, ok := in.QtyBySKU[orderSKU]; ok && q.GreaterThan(decimal.Zero) {
		orderedQty = q
	}
	stockUnits := orderedQty.Mul(res.UnitMultiplier)

	sufficient, shortages, err := r.compositions.ComponentStockSufficient(ctx, in.OrgID, stockSKU, in.LocationID, stockUnits)
	if err != nil {
		res.Err = err
		res.Diagnostics = append(res.Diagnostics, err.Error())
		return ""
	}
	if !sufficient {
		where := res.LocationName
		if where == "" && in.LocationID != nil {
			where = *in.LocationID
		}
		for _, s := range shortages {
			res.Diagnostics = append(res.Diagnostics,
				fmt.Sprintf("Stock insuficiente en la ubicación %s: %s necesario %s, disponible %s",
					where, s.ComponentSKU, s.Required.String(), s.Available.String()))
		}
		return domain.FulfillmentOutOfStock
	}
	return domain.FulfillmentReady
}
