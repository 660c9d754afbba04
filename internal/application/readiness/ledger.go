package readiness

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecomlabs/readiness-api/internal/domain"
	"github.com/ecomlabs/readiness-api/internal/domain/entity"
	"github.com/ecomlabs/readiness-api/internal/domain/repository"
	"github.com/ecomlabs/readiness-api/pkg/logger"
)

// StockLedger responde "¿hay suficiente del SKU X en la ubicación L?" y aplica
// decrementos atómicos. El agregado del SKU se recalcula tras cada decremento
// como suma de todas sus ubicaciones (misma transacción); solo la cantidad por
// ubicación gatea el decremento.
type StockLedger struct {
	txRunner      TxRunner
	locationStock repository.LocationStockRepository
	locations     repository.StockLocationRepository
	log           *logger.Logger
}

// NewStockLedger construye el ledger.
func NewStockLedger(
	txRunner TxRunner,
	locationStock repository.LocationStockRepository,
	locations repository.StockLocationRepository,
	log *logger.Logger,
) *StockLedger {
	return &StockLedger{
		txRunner:      txRunner,
		locationStock: locationStock,
		locations:     locations,
		log:           log,
	}
}

// AvailabilityResult resultado de una consulta de disponibilidad.
type AvailabilityResult struct {
	Available    bool
	OnHand       decimal.Decimal
	LocationName string
}

// AvailabilityItem un ítem de una consulta en lote.
type AvailabilityItem struct {
	SKU      string
	Quantity decimal.Decimal
}

// ItemAvailability resultado por ítem de CheckAvailabilityBatch.
type ItemAvailability struct {
	SKU       string
	Required  decimal.Decimal
	OnHand    decimal.Decimal
	Available bool
	Message   string // vacío si alcanza
}

// BatchAvailability resultado agregado de CheckAvailabilityBatch.
type BatchAvailability struct {
	AllAvailable bool
	Items        []ItemAvailability
	// ErrorSummary texto multilínea "sku: mensaje" con cada faltante,
	// usable directamente como diagnóstico de cara al usuario.
	ErrorSummary string
}

// CheckAvailability responde si hay al menos required del SKU en la ubicación.
// Un SKU sin fila en esa ubicación es el caso normal "no abastecido aquí":
// devuelve available=false con onHand=0, no un error.
func (l *StockLedger) CheckAvailability(ctx context.Context, orgID, sku, locationID string, required decimal.Decimal) (AvailabilityResult, error) {
	res := AvailabilityResult{OnHand: decimal.Zero}
	if loc, err := l.locations.GetByID(ctx, orgID, locationID); err == nil && loc != nil {
		res.LocationName = loc.Name
	}
	ls, err := l.locationStock.Get(ctx, orgID, sku, locationID)
	if err != nil {
		return res, domain.NewStorageError(sku, err)
	}
	if ls == nil {
		return res, nil
	}
	res.OnHand = ls.Quantity
	res.Available = ls.Quantity.GreaterThanOrEqual(required)
	return res, nil
}

// CheckAvailabilityBatch evalúa varios ítems contra una misma ubicación y
// arma el resumen de faltantes.
func (l *StockLedger) CheckAvailabilityBatch(ctx context.Context, orgID string, items []AvailabilityItem, locationID string) (*BatchAvailability, error) {
	locName := locationID
	if loc, err := l.locations.GetByID(ctx, orgID, locationID); err == nil && loc != nil {
		locName = loc.Name
	}

	out := &BatchAvailability{AllAvailable: true}
	var summary []string
	for _, it := range items {
		ls, err := l.locationStock.Get(ctx, orgID, it.SKU, locationID)
		if err != nil {
			return nil, domain.NewStorageError(it.SKU, err)
		}
		onHand := decimal.Zero
		if ls != nil {
			onHand = ls.Quantity
		}
		item := ItemAvailability{SKU: it.SKU, Required: it.Quantity, OnHand: onHand}
		item.Available = onHand.GreaterThanOrEqual(it.Quantity)
		if !item.Available {
			item.Message = fmt.Sprintf("Stock insuficiente en la ubicación %s: %s necesario %s, disponible %s",
				locName, it.SKU, it.Quantity.String(), onHand.String())
			summary = append(summary, fmt.Sprintf("%s: %s", it.SKU, item.Message))
			out.AllAvailable = false
		}
		out.Items = append(out.Items, item)
	}
	out.ErrorSummary = strings.Join(summary, "\n")
	return out, nil
}

// DecrementResult cantidades resultantes de un decremento.
type DecrementResult struct {
	NewLocationQuantity  decimal.Decimal
	NewAggregateQuantity decimal.Decimal
}

// Decrement resta qty del SKU en la ubicación de forma atómica y recalcula el
// agregado del SKU. Falla con domain.ErrInsufficientStock si la fila no cubre
// qty; el caller no debe reintentar sin releer cantidades.
func (l *StockLedger) Decrement(ctx context.Context, orgID, sku, locationID string, qty decimal.Decimal) (*DecrementResult, error) {
	return l.decrementTx(ctx, orgID, sku, locationID, qty, uuid.New().String())
}

func (l *StockLedger) decrementTx(ctx context.Context, orgID, sku, locationID string, qty decimal.Decimal, txID string) (*DecrementResult, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var result DecrementResult
	err := l.txRunner.Run(ctx, func(
		stockRepo repository.LocationStockRepository,
		skuRepo repository.StockSkuRepository,
		movRepo repository.StockMovementRepository,
	) error {
		newQty, err := stockRepo.DecrementGuarded(ctx, orgID, sku, locationID, qty)
		if err != nil {
			return err
		}
		// Recalcula el agregado como suma de ubicaciones (misma tx). Bajo
		// decrementos concurrentes del mismo SKU en otras ubicaciones puede
		// quedar transitoriamente desfasado; nunca gatea el decremento.
		agg, err := stockRepo.SumBySKU(ctx, orgID, sku)
		if err != nil {
			return err
		}
		if err := skuRepo.UpdateQuantityOnHand(ctx, orgID, sku, agg); err != nil {
			return err
		}
		now := time.Now()
		mov := &entity.StockMovement{
			ID:            uuid.New().String(),
			TransactionID: txID,
			OrgID:         orgID,
			SKU:           sku,
			LocationID:    locationID,
			Type:          entity.MovementTypeOUT,
			Quantity:      qty.Neg(),
			Date:          now,
			CreatedAt:     now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		result.NewLocationQuantity = newQty
		result.NewAggregateQuantity = agg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// OrderLine una línea a decrementar.
type OrderLine struct {
	SKU        string
	LocationID string
	Quantity   decimal.Decimal
}

// DecrementedLine línea decrementada con éxito.
type DecrementedLine struct {
	SKU                  string
	LocationID           string
	NewLocationQuantity  decimal.Decimal
	NewAggregateQuantity decimal.Decimal
}

// FailedLine línea que no pudo decrementarse y la razón.
type FailedLine struct {
	SKU        string
	LocationID string
	Reason     string
}

// DecrementReport reporte de éxito parcial de DecrementForOrder.
type DecrementReport struct {
	TransactionID string
	Succeeded     []DecrementedLine
	Failed        []FailedLine
}

// DecrementForOrder aplica Decrement por línea, continuando tras fallas
// individuales: devuelve un reporte de éxito parcial en vez de abortar el
// lote. Todas las líneas del pedido comparten TransactionID en el journal.
func (l *StockLedger) DecrementForOrder(ctx context.Context, orgID string, lines []OrderLine) *DecrementReport {
	start := time.Now()
	report := &DecrementReport{TransactionID: uuid.New().String()}
	for _, line := range lines {
		res, err := l.decrementTx(ctx, orgID, line.SKU, line.LocationID, line.Quantity, report.TransactionID)
		if err != nil {
			report.Failed = append(report.Failed, FailedLine{
				SKU:        line.SKU,
				LocationID: line.LocationID,
				Reason:     err.Error(),
			})
			continue
		}
		report.Succeeded = append(report.Succeeded, DecrementedLine{
			SKU:                  line.SKU,
			LocationID:           line.LocationID,
			NewLocationQuantity:  res.NewLocationQuantity,
			NewAggregateQuantity: res.NewAggregateQuantity,
		})
	}
	l.log.Info().
		Str("org_id", orgID).
		Str("transaction_id", report.TransactionID).
		Int("lines", len(lines)).
		Int("succeeded", len(report.Succeeded)).
		Int("failed", len(report.Failed)).
		Dur("elapsed", time.Since(start)).
		Msg("decremento por pedido aplicado")
	return report
}
