package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ecomlabs/readiness-api/internal/application/dto"
	"github.com/ecomlabs/readiness-api/internal/application/readiness"
	"github.com/ecomlabs/readiness-api/internal/domain"
)

// ReadinessHandler maneja las peticiones HTTP del motor de preparación.
type ReadinessHandler struct {
	resolver *readiness.Resolver
	supply   *readiness.SupplyValidator
	ledger   *readiness.StockLedger
}

// NewReadinessHandler construye el handler.
func NewReadinessHandler(resolver *readiness.Resolver, supply *readiness.SupplyValidator, ledger *readiness.StockLedger) *ReadinessHandler {
	return &ReadinessHandler{resolver: resolver, supply: supply, ledger: ledger}
}

// Resolve godoc
// @Summary      Resolver preparación de un lote de SKUs de pedido
// @Tags         readiness
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResolveRequest  true  "org_id, order_skus, location_id (opcional), qty_by_sku (opcional)"
// @Success      200   {array}   dto.ResolutionResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/readiness/resolve [post]
func (h *ReadinessHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	results, err := h.resolver.ResolveBatch(c.Context(), readiness.ResolveInput{
		OrgID:      in.OrgID,
		OrderSKUs:  in.OrderSKUs,
		LocationID: in.LocationID,
		QtyBySKU:   in.QtyBySKU,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ResolutionResultDTO, 0, len(results))
	for _, r := range results {
		out = append(out, dto.FromResolutionResult(r))
	}
	return c.JSON(out)
}

// ValidateSupply godoc
// @Summary      Validar insumos de un lote de SKUs de stock
// @Tags         readiness
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplyRequest  true  "org_id, stock_skus, location_id (opcional)"
// @Success      200   {object}  map[string]dto.SupplyResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/readiness/supply [post]
func (h *ReadinessHandler) ValidateSupply(c *fiber.Ctx) error {
	var in dto.SupplyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.OrgID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "org_id requerido"})
	}
	results, err := h.supply.ValidateBatch(c.Context(), in.OrgID, in.StockSKUs, in.LocationID)
	if err != nil && len(results) == 0 {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: err.Error()})
	}
	out := make(map[string]dto.SupplyResultDTO, len(results))
	for sku, r := range results {
		out[sku] = dto.FromSupplyResult(r)
	}
	return c.JSON(out)
}

// Decrement godoc
// @Summary      Decrementar stock por líneas de pedido (éxito parcial)
// @Tags         readiness
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DecrementRequest  true  "org_id, lines"
// @Success      200   {object}  dto.DecrementReportDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/readiness/decrement [post]
func (h *ReadinessHandler) Decrement(c *fiber.Ctx) error {
	var in dto.DecrementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.OrgID == "" || len(in.Lines) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "org_id y lines requeridos"})
	}
	lines := make([]readiness.OrderLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, readiness.OrderLine{SKU: l.SKU, LocationID: l.LocationID, Quantity: l.Quantity})
	}
	report := h.ledger.DecrementForOrder(c.Context(), in.OrgID, lines)
	return c.JSON(dto.FromDecrementReport(report))
}
