package dto

import (
	"github.com/shopspring/decimal"

	"github.com/ecomlabs/readiness-api/internal/application/readiness"
	"github.com/ecomlabs/readiness-api/internal/domain/entity"
)

// ResolveRequest body para POST /api/readiness/resolve.
type ResolveRequest struct {
	OrgID      string                     `json:"org_id"`
	OrderSKUs  []string                   `json:"order_skus"`
	LocationID *string                    `json:"location_id,omitempty"`
	QtyBySKU   map[string]decimal.Decimal `json:"qty_by_sku,omitempty"`
}

// ResolutionResultDTO una línea resuelta.
type ResolutionResultDTO struct {
	OrderSKU          string          `json:"order_sku"`
	Mapped            bool            `json:"mapped"`
	StockSKU          *string         `json:"stock_sku,omitempty"`
	KitSKU            *string         `json:"kit_sku,omitempty"`
	UnitMultiplier    decimal.Decimal `json:"unit_multiplier"`
	FulfillmentStatus string          `json:"fulfillment_status"`
	SupplyStatus      string          `json:"supply_status"`
	CombinedStatus    string          `json:"combined_status"`
	LocationID        *string         `json:"location_id,omitempty"`
	LocationName      string          `json:"location_name,omitempty"`
	Diagnostics       []string        `json:"diagnostics,omitempty"`
	Error             string          `json:"error,omitempty"`
}

// FromResolutionResult mapea el resultado del motor al DTO.
func FromResolutionResult(r *entity.ResolutionResult) ResolutionResultDTO {
	out := ResolutionResultDTO{
		OrderSKU:          r.OrderSKU,
		Mapped:            r.Mapped,
		StockSKU:          r.StockSKU,
		KitSKU:            r.KitSKU,
		UnitMultiplier:    r.UnitMultiplier,
		FulfillmentStatus: string(r.FulfillmentStatus),
		SupplyStatus:      string(r.SupplyStatus),
		CombinedStatus:    string(r.CombinedStatus),
		LocationID:        r.LocationID,
		LocationName:      r.LocationName,
		Diagnostics:       r.Diagnostics,
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return out
}

// SupplyRequest body para POST /api/readiness/supply.
type SupplyRequest struct {
	OrgID      string   `json:"org_id"`
	StockSKUs  []string `json:"stock_skus"`
	LocationID *string  `json:"location_id,omitempty"`
}

// InsumoShortageDTO faltante de un insumo.
type InsumoShortageDTO struct {
	InsumoSKU string          `json:"insumo_sku"`
	Required  decimal.Decimal `json:"required"`
	Available decimal.Decimal `json:"available"`
}

// SupplyResultDTO resultado de insumos por SKU de stock.
type SupplyResultDTO struct {
	StockSKU     string              `json:"stock_sku"`
	Status       string              `json:"status"`
	Missing      []string            `json:"missing,omitempty"`
	Short        []InsumoShortageDTO `json:"short,omitempty"`
	LocationName string              `json:"location_name,omitempty"`
}

// FromSupplyResult mapea el resultado del validador al DTO.
func FromSupplyResult(r *entity.SupplyResult) SupplyResultDTO {
	out := SupplyResultDTO{
		StockSKU:     r.StockSKU,
		Status:       string(r.Status),
		Missing:      r.Missing,
		LocationName: r.LocationName,
	}
	for _, s := range r.Short {
		out.Short = append(out.Short, InsumoShortageDTO{
			InsumoSKU: s.InsumoSKU,
			Required:  s.Required,
			Available: s.Available,
		})
	}
	return out
}

// DecrementLine una línea a decrementar.
type DecrementLine struct {
	SKU        string          `json:"sku"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// DecrementRequest body para POST /api/readiness/decrement.
type DecrementRequest struct {
	OrgID string          `json:"org_id"`
	Lines []DecrementLine `json:"lines"`
}

// DecrementedLineDTO línea decrementada con éxito.
type DecrementedLineDTO struct {
	SKU                  string          `json:"sku"`
	LocationID           string          `json:"location_id"`
	NewLocationQuantity  decimal.Decimal `json:"new_location_quantity"`
	NewAggregateQuantity decimal.Decimal `json:"new_aggregate_quantity"`
}

// FailedLineDTO línea fallida y su razón.
type FailedLineDTO struct {
	SKU        string `json:"sku"`
	LocationID string `json:"location_id"`
	Reason     string `json:"reason"`
}

// DecrementReportDTO reporte de éxito parcial.
type DecrementReportDTO struct {
	TransactionID string               `json:"transaction_id"`
	Succeeded     []DecrementedLineDTO `json:"succeeded"`
	Failed        []FailedLineDTO      `json:"failed"`
}

// FromDecrementReport mapea el reporte del ledger al DTO.
func FromDecrementReport(r *readiness.DecrementReport) DecrementReportDTO {
	out := DecrementReportDTO{TransactionID: r.TransactionID}
	for _, line := range r.Succeeded {
		out.Succeeded = append(out.Succeeded, DecrementedLineDTO{
			SKU:                  line.SKU,
			LocationID:           line.LocationID,
			NewLocationQuantity:  line.NewLocationQuantity,
			NewAggregateQuantity: line.NewAggregateQuantity,
		})
	}
	for _, line := range r.Failed {
		out.Failed = append(out.Failed, FailedLineDTO{
			SKU:        line.SKU,
			LocationID: line.LocationID,
			Reason:     line.Reason,
		})
	}
	return out
}
