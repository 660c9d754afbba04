package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecomlabs/readiness-api/internal/application/readiness"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Resolver *readiness.Resolver
	Supply   *readiness.SupplyValidator
	Ledger   *readiness.StockLedger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	group := api.Group("/readiness")
	handler := NewReadinessHandler(deps.Resolver, deps.Supply, deps.Ledger)
	group.Post("/resolve", handler.Resolve)
	group.Post("/supply", handler.ValidateSupply)
	group.Post("/decrement", handler.Decrement)
}
